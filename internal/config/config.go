package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Parser struct {
		NodeBin        string `yaml:"node_bin"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"parser"`
	Bank struct {
		Dir string `yaml:"dir"` // directory of requirement spec files
	} `yaml:"bank"`
	Store struct {
		Path string `yaml:"path"` // sqlite database for grading history
	} `yaml:"store"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.Parser.NodeBin = "node"
	cfg.Parser.TimeoutSeconds = 10
	cfg.Bank.Dir = "problems"
	cfg.Store.Path = "codejudge.db"
	cfg.Logging.Level = "info"
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config when a file is given
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if nodeBin := os.Getenv("CODEJUDGE_NODE_BIN"); nodeBin != "" {
		cfg.Parser.NodeBin = nodeBin
	}
	if timeout := os.Getenv("CODEJUDGE_PARSER_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			cfg.Parser.TimeoutSeconds = secs
		}
	}
	if dbPath := os.Getenv("CODEJUDGE_DB_PATH"); dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if level := os.Getenv("CODEJUDGE_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	return cfg, nil
}
