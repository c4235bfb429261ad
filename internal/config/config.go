// Package config reads and writes ledgertrace.yaml, the project-level
// configuration every command loads before touching the event store.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgertrace.yaml configuration.
type Config struct {
	ReferenceCurrency string       `yaml:"reference_currency"`
	BanksFile         string       `yaml:"banks_file"`
	RulesFile         string       `yaml:"rules_file"`
	EventStorePath    string       `yaml:"event_store_path"`
	Dedup             DedupConfig  `yaml:"dedup"`
	Logging           LoggingConfig `yaml:"logging"`
}

// DedupConfig mirrors internal/dedup.Config's fields in a YAML-friendly
// shape: tolerances are kept as strings so shopspring/decimal parses them
// explicitly rather than relying on decimal's YAML tag support, which
// targets yaml.v2's Unmarshaler signature and not this project's yaml.v3.
type DedupConfig struct {
	FuzzyDateToleranceDays int     `yaml:"fuzzy_date_tolerance_days"`
	FuzzyAmountTolerance   string  `yaml:"fuzzy_amount_tolerance"`
	FuzzyFloor             float64 `yaml:"fuzzy_floor"`
	ExactConfidence        float64 `yaml:"exact_confidence"`
	TransferConfidence     float64 `yaml:"transfer_confidence"`
}

// LoggingConfig controls the zerolog wrapper in internal/logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a ledgertrace.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		ReferenceCurrency: "USD",
		BanksFile:         "banks.csv",
		RulesFile:         "rules.json",
		EventStorePath:    "ledgertrace.db",
		Dedup: DedupConfig{
			FuzzyDateToleranceDays: 1,
			FuzzyAmountTolerance:   "0.50",
			FuzzyFloor:             0.70,
			ExactConfidence:        0.95,
			TransferConfidence:     0.90,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
