package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDataset is used when no dataset file is configured.
func DefaultDataset() *DatasetConfig {
	return &DatasetConfig{
		Entries: []DatasetEntry{
			{ID: "echo://static", Title: "Static echo", Text: "Echo!", URL: "echo://static"},
		},
	}
}

// LoadDataset reads the static table from path. An empty path yields the default
// single-entry table.
func LoadDataset(path string) (*DatasetConfig, error) {
	if path == "" {
		return DefaultDataset(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var cfg DatasetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *DatasetConfig) {
	for i := range cfg.Entries {
		if cfg.Entries[i].URL == "" {
			cfg.Entries[i].URL = cfg.Entries[i].ID
		}
	}
}

func (d *DatasetConfig) Validate() error {
	if len(d.Entries) == 0 {
		return fmt.Errorf("no entries configured")
	}

	seen := make(map[string]bool, len(d.Entries))
	for i, entry := range d.Entries {
		if entry.ID == "" {
			return fmt.Errorf("entry %d: missing id", i)
		}
		if seen[entry.ID] {
			return fmt.Errorf("duplicate entry id: %s", entry.ID)
		}
		seen[entry.ID] = true
	}
	return nil
}
