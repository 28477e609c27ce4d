package setup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"BACKEND", "SEARCH_LIMIT", "CITATION_BASE_URL", "MCP_TRANSPORT", "REDIS_PREFIX"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Backend != BackendOpenAI {
		t.Errorf("Expected default backend openai, got %q", cfg.Backend)
	}
	if cfg.SearchLimit != 10 {
		t.Errorf("Expected default search limit 10, got %d", cfg.SearchLimit)
	}
	if cfg.CitationBaseURL != "https://platform.openai.com" {
		t.Errorf("Unexpected citation base %q", cfg.CitationBaseURL)
	}
	if cfg.MCPTransport != "stdio" {
		t.Errorf("Expected stdio transport, got %q", cfg.MCPTransport)
	}
	if cfg.RedisPrefix != "search-agent:" {
		t.Errorf("Unexpected redis prefix %q", cfg.RedisPrefix)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BACKEND", "STATIC")
	t.Setenv("SEARCH_LIMIT", "3")
	t.Setenv("MCP_TRANSPORT", "http")

	cfg := LoadConfig()

	if cfg.Backend != BackendStatic {
		t.Errorf("Expected static backend, got %q", cfg.Backend)
	}
	if cfg.SearchLimit != 3 {
		t.Errorf("Expected search limit 3, got %d", cfg.SearchLimit)
	}
	if cfg.MCPTransport != "http" {
		t.Errorf("Expected http transport, got %q", cfg.MCPTransport)
	}
}

func TestLoadConfig_BadIntFallsBack(t *testing.T) {
	t.Setenv("SEARCH_LIMIT", "many")

	if got := LoadConfig().SearchLimit; got != 10 {
		t.Errorf("Expected fallback to 10, got %d", got)
	}
}

func validConfig() *Config {
	return &Config{
		Backend:       BackendOpenAI,
		OpenAIKey:     "sk-test",
		VectorStoreID: "vs_123",
		SearchLimit:   10,
		RedisAddr:     "localhost:6379",
		MCPTransport:  "stdio",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid openai", mutate: func(c *Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.OpenAIKey = "" }, wantErr: true},
		{name: "missing vector store", mutate: func(c *Config) { c.VectorStoreID = "" }, wantErr: true},
		{name: "static needs no credentials", mutate: func(c *Config) { c.Backend = BackendStatic; c.OpenAIKey = ""; c.VectorStoreID = "" }},
		{name: "redis without address", mutate: func(c *Config) { c.Backend = BackendRedis; c.RedisAddr = "" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "elastic" }, wantErr: true},
		{name: "non-positive limit", mutate: func(c *Config) { c.SearchLimit = 0 }, wantErr: true},
		{name: "unknown transport", mutate: func(c *Config) { c.MCPTransport = "sse" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrConfig) {
					t.Errorf("Expected ErrConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestWire_Static(t *testing.T) {
	cfg := validConfig()
	cfg.Backend = BackendStatic

	deps, err := Wire(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer deps.Close()

	results, err := deps.Service.Search(context.Background(), "hello", 0)
	if err != nil {
		t.Fatalf("Unexpected search error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}
}

func TestWire_StaticDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	data := []byte("entries:\n  - id: doc-1\n    title: Runbook\n    text: restart the service\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}

	cfg := validConfig()
	cfg.Backend = BackendStatic
	cfg.StaticDatasetPath = path

	deps, err := Wire(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := deps.Service.Fetch(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("Unexpected fetch error: %v", err)
	}
	if result.Text != "restart the service" {
		t.Errorf("Unexpected text %q", result.Text)
	}
}

func TestWire_OpenAIBuildsWithoutNetwork(t *testing.T) {
	deps, err := Wire(context.Background(), validConfig(), testLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if deps.Service == nil || deps.Metrics == nil {
		t.Error("Expected service and metrics to be wired")
	}
}

func TestWire_InvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAIKey = ""

	if _, err := Wire(context.Background(), cfg, testLogger()); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig, got %v", err)
	}
}
