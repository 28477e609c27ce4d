package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDataset_Success(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dataset.yaml")

	content := `entries:
  - id: echo://static
    title: Static echo
    text: "Echo!"
  - id: docs://handbook
    title: Handbook
    text: |
      Onboarding notes for new engineers.
    url: https://intranet.example/handbook
    metadata:
      team: platform
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test dataset: %v", err)
	}

	cfg, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset() failed: %v", err)
	}

	if len(cfg.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(cfg.Entries))
	}

	static := cfg.Entries[0]
	if static.Text != "Echo!" {
		t.Errorf("Expected text 'Echo!', got '%s'", static.Text)
	}
	// URL defaults to the id
	if static.URL != "echo://static" {
		t.Errorf("Expected url 'echo://static', got '%s'", static.URL)
	}

	handbook := cfg.Entries[1]
	if handbook.URL != "https://intranet.example/handbook" {
		t.Errorf("Expected explicit url, got '%s'", handbook.URL)
	}
	if handbook.Metadata["team"] != "platform" {
		t.Errorf("Expected metadata team=platform, got %v", handbook.Metadata)
	}
}

func TestLoadDataset_EmptyPathUsesDefault(t *testing.T) {
	cfg, err := LoadDataset("")
	if err != nil {
		t.Fatalf("LoadDataset() failed: %v", err)
	}
	if len(cfg.Entries) != 1 || cfg.Entries[0].ID != "echo://static" {
		t.Errorf("Expected default echo entry, got %+v", cfg.Entries)
	}
}

func TestLoadDataset_FileNotFound(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read dataset file") {
		t.Errorf("Expected 'failed to read dataset file' error, got: %v", err)
	}
}

func TestLoadDataset_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	invalid := `entries:
  - id: a
    text: "unterminated
`
	if err := os.WriteFile(path, []byte(invalid), 0644); err != nil {
		t.Fatalf("Failed to write test dataset: %v", err)
	}

	_, err := LoadDataset(path)
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected 'failed to parse YAML' error, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DatasetConfig
		wantErr string
	}{
		{name: "no entries", cfg: DatasetConfig{}, wantErr: "no entries configured"},
		{name: "missing id", cfg: DatasetConfig{Entries: []DatasetEntry{{Text: "x"}}}, wantErr: "missing id"},
		{
			name:    "duplicate id",
			cfg:     DatasetConfig{Entries: []DatasetEntry{{ID: "a"}, {ID: "a"}}},
			wantErr: "duplicate entry id",
		},
		{name: "valid", cfg: DatasetConfig{Entries: []DatasetEntry{{ID: "a"}, {ID: "b"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
