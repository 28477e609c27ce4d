package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newWithWriter(&bytes.Buffer{}, tt.level)
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("expected level %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewWithWriter_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "info")
	logger.Info().Str("backend", "static").Msg("ready")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if line["backend"] != "static" || line["message"] != "ready" {
		t.Errorf("unexpected fields: %v", line)
	}
}
