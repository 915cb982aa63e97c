package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output != "table" || cfg.Server != "" || cfg.LogLevel != "warn" {
		t.Errorf("Default() = %+v", cfg)
	}
	if !strings.HasSuffix(cfg.DataDir, filepath.Join(".diorite", "data")) {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if err := cfg.Verify(); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if !strings.HasSuffix(DefaultConfigPath(), filepath.Join(".diorite", "cli.yaml")) {
		t.Errorf("DefaultConfigPath() = %q", DefaultConfigPath())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	data := "server: localhost:5090\noutput: json\ndata_dir: /var/lib/diorite\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DIORITE_CLI_OUTPUT", "yaml")
	t.Setenv("DIORITE_CLI_LOG__LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != "localhost:5090" || cfg.DataDir != "/var/lib/diorite" {
		t.Errorf("file values = %+v", cfg)
	}
	if cfg.Output != "yaml" || cfg.LogLevel != "debug" {
		t.Errorf("env values = output %q level %q", cfg.Output, cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing explicit path) error = nil")
	}

	path := filepath.Join(t.TempDir(), "cli.yaml")
	_ = os.WriteFile(path, []byte("output: xml\n"), 0o600)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("Load(bad output) error = %v", err)
	}
}

func TestLoad_DefaultPathMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Output != "table" {
		t.Errorf("Output = %q, want table", cfg.Output)
	}
}
