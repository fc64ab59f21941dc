package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInit_JSONToFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "sentinel.log")
	if err := Init(Config{Format: "json", File: path, Out: &buf, Debug: true}); err != nil {
		t.Fatalf("init: %v", err)
	}
	log.Info().Str("symbol", "RY.TO").Msg("hello")

	var line map[string]any
	last := strings.TrimSpace(buf.String())
	last = last[strings.LastIndex(last, "\n")+1:]
	if err := json.Unmarshal([]byte(last), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q", last)
	}
	if line["symbol"] != "RY.TO" || line["service"] != "sentinel" {
		t.Errorf("unexpected fields %v", line)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Error("log file missing message")
	}
}

func TestInit_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	var buf bytes.Buffer
	if err := Init(Config{Format: "json", Out: &buf}); err != nil {
		t.Fatal(err)
	}
	log.Debug().Msg("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug messages should be dropped without Debug")
	}
}
