// Package bank loads requirement specs from a problem directory.
// Each problem is one YAML or JSON file named after its problem ID.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"codejudge/internal/spec"
)

var specExtensions = []string{".yaml", ".yml", ".json"}

type Bank struct {
	dir string
}

func New(dir string) *Bank {
	return &Bank{dir: dir}
}

// LoadFile reads, normalizes, and schema-validates one spec file.
func LoadFile(path string) (*spec.RequirementSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s spec.RequirementSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	s.Normalize()
	if s.Legacy() {
		// Legacy specs load so the engine can report the configuration
		// error through feedback instead of failing here.
		return &s, nil
	}
	if err := spec.ValidateSchema(&s); err != nil {
		return nil, fmt.Errorf("invalid spec %s: %w", path, err)
	}
	return &s, nil
}

// Load resolves a problem ID to its spec file inside the bank.
func (b *Bank) Load(problemID string) (*spec.RequirementSpec, error) {
	for _, ext := range specExtensions {
		path := filepath.Join(b.dir, problemID+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, fmt.Errorf("problem %q not found in %s", problemID, b.dir)
}

// List returns the problem IDs available in the bank, sorted.
func (b *Bank) List() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !containsExt(ext) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func containsExt(ext string) bool {
	for _, e := range specExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
