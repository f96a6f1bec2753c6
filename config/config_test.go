package config

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 0 || cfg.LootingBonus != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("LOOTCORE_SEED", "42")
	t.Setenv("LOOTCORE_LOOTING_BONUS", "1.5")
	t.Setenv("LOOTCORE_LOG_LEVEL", "debug")
	t.Setenv("LOOTCORE_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 42 || cfg.LootingBonus != 1.5 {
		t.Errorf("cfg = %+v", cfg)
	}
	if lvl, err := cfg.Level(); err != nil || lvl != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", lvl, err)
	}
}

func TestLoad_Error(t *testing.T) {
	t.Setenv("LOOTCORE_SEED", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Config{LogLevel: "warn", LogFormat: "json"}.NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "table", "zombie")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"table":"zombie"`) {
		t.Errorf("expected JSON attrs, got %s", out)
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("error level should be enabled")
	}
}

func TestNewLogger_Errors(t *testing.T) {
	if _, err := (Config{LogLevel: "loud", LogFormat: "text"}).NewLogger(&bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := (Config{LogLevel: "info", LogFormat: "xml"}).NewLogger(&bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
