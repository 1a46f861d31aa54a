package spec

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// requirementSchema is the JSON-Schema contract for RequirementSpec
// documents. Both the short (bare name / free text) and detailed
// (object) requirement forms are admitted.
const requirementSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "requirement.schema.json",
  "type": "object",
  "required": ["difficulty", "framework"],
  "properties": {
    "difficulty": {
      "type": "string",
      "enum": ["beginner", "easy", "intermediate", "medium", "advanced", "hard"]
    },
    "framework": {
      "type": "string",
      "enum": ["django", "react", "express", "angular", "nodejs", "node"]
    },
    "required_imports": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "required_structure": {
      "type": "object",
      "properties": {
        "classes": {
          "type": "array",
          "items": {
            "oneOf": [
              {"type": "string", "minLength": 1},
              {
                "type": "object",
                "required": ["name"],
                "properties": {
                  "name": {"type": "string", "minLength": 1},
                  "parent_class": {"type": "string"},
                  "methods": {"type": "array", "items": {"type": "string"}}
                }
              }
            ]
          }
        },
        "functions": {
          "type": "array",
          "items": {
            "oneOf": [
              {"type": "string", "minLength": 1},
              {
                "type": "object",
                "required": ["name"],
                "properties": {
                  "name": {"type": "string", "minLength": 1},
                  "params": {"type": "array", "items": {"type": "string"}},
                  "type": {"type": "string"},
                  "has_prop_types": {"type": "boolean"},
                  "has_export": {"type": "boolean"}
                }
              }
            ]
          }
        }
      }
    },
    "behavior_patterns": {
      "type": "array",
      "items": {
        "oneOf": [
          {"type": "string", "minLength": 1},
          {
            "type": "object",
            "required": ["type"],
            "properties": {
              "type": {"type": "string", "minLength": 1}
            }
          }
        ]
      }
    },
    "scoring": {
      "type": "object",
      "properties": {
        "import_weight": {"type": "number", "minimum": 0},
        "structure_weight": {"type": "number", "minimum": 0},
        "behavior_weight": {"type": "number", "minimum": 0}
      }
    },
    "passing_score": {"type": "number", "minimum": 0, "maximum": 100}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledRequirementSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("requirement.schema.json", strings.NewReader(requirementSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("requirement.schema.json")
	})
	return compiledSchema, schemaErr
}

// ValidateSchema checks the spec against the JSON-Schema contract.
// Struct-level Validate runs first so the caller gets the clearer
// message when both would fail.
func ValidateSchema(s *RequirementSpec) error {
	if err := s.Validate(); err != nil {
		return err
	}

	schema, err := compiledRequirementSchema()
	if err != nil {
		return fmt.Errorf("failed to compile requirement schema: %w", err)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal spec for schema validation: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to normalize spec for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("requirement schema validation failed: %w", err)
	}
	return nil
}
