package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"crosswarped.com/wordbrain/pkg/trie"
)

// Config holds the wordbrain settings shared by the CLI and the solve function.
type Config struct {
	// Dictionary is the compiled dictionary, a local path or gs://bucket/object.
	Dictionary string `yaml:"dictionary"`
	// WordList is the plain word list the dictionary is compiled from.
	WordList string `yaml:"word_list"`
	// MaxNodes is the trie arena capacity.
	MaxNodes int `yaml:"max_nodes"`

	Logging  LoggingConfig  `yaml:"logging"`
	BigQuery BigQueryConfig `yaml:"bigquery"`
	Function FunctionConfig `yaml:"function"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// BigQueryConfig locates a word list table for `compile --bigquery`.
type BigQueryConfig struct {
	Project  string `yaml:"project"`
	Table    string `yaml:"table"`  // dataset.table
	Column   string `yaml:"column"` // column holding one word per row
	Location string `yaml:"location"`
}

type FunctionConfig struct {
	Port         string `yaml:"port"`
	LocalOnly    bool   `yaml:"local_only"`
	MaxSolutions int    `yaml:"max_solutions"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Dictionary: "words.tree",
		WordList:   "words.txt",
		MaxNodes:   trie.DefaultMaxNodes,
		Logging: LoggingConfig{
			Level: "info",
		},
		BigQuery: BigQueryConfig{
			Column:   "word",
			Location: "US",
		},
		Function: FunctionConfig{
			Port:         "8080",
			MaxSolutions: 50,
		},
	}
}

// Load reads a YAML config file over the defaults, then applies environment overrides.
// An empty path yields the defaults. A named file must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if dict := os.Getenv("WORDBRAIN_DICTIONARY"); dict != "" {
		c.Dictionary = dict
	}
	if n := os.Getenv("WORDBRAIN_MAX_NODES"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil {
			return fmt.Errorf("WORDBRAIN_MAX_NODES: %w", err)
		}
		c.MaxNodes = v
	}
	if project := os.Getenv("WORDBRAIN_BIGQUERY_PROJECT"); project != "" {
		c.BigQuery.Project = project
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Function.Port = port
	}
	if os.Getenv("LOCAL_ONLY") == "true" {
		c.Function.LocalOnly = true
	}
	return nil
}

// Validate checks the settings that have no usable zero value.
func (c *Config) Validate() error {
	if c.MaxNodes <= 0 || c.MaxNodes > trie.MaxCapacity {
		return fmt.Errorf("max_nodes must be between 1 and %d, got %d", trie.MaxCapacity, c.MaxNodes)
	}
	if c.Function.MaxSolutions <= 0 {
		return fmt.Errorf("function.max_solutions must be positive, got %d", c.Function.MaxSolutions)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}
