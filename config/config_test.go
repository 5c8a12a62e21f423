package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Graph.URI != "bolt://localhost:7687" {
		t.Errorf("expected default graph URI bolt://localhost:7687, got %s", cfg.Graph.URI)
	}
	if cfg.Graph.Username != "neo4j" {
		t.Errorf("expected default username neo4j, got %s", cfg.Graph.Username)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.HTTP.Addr)
	}
	if !cfg.NATS.Embedded {
		t.Error("expected embedded NATS by default")
	}
	if cfg.NATS.Enabled {
		t.Error("expected event publishing disabled by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Log.Level)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing graph uri",
			modify:  func(c *Config) { c.Graph.URI = "" },
			wantErr: true,
		},
		{
			name:    "missing graph username",
			modify:  func(c *Config) { c.Graph.Username = "" },
			wantErr: true,
		},
		{
			name:    "missing http addr",
			modify:  func(c *Config) { c.HTTP.Addr = "" },
			wantErr: true,
		},
		{
			name:    "missing http prefix",
			modify:  func(c *Config) { c.HTTP.Prefix = "" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	base.Merge(&Config{
		Graph: GraphConfig{URI: "bolt://graph:7687", Password: "secret"},
		NATS:  NATSConfig{URL: "nats://localhost:4222"},
		Log:   LogConfig{Level: "debug"},
	})

	if base.Graph.URI != "bolt://graph:7687" {
		t.Errorf("graph uri not merged: %s", base.Graph.URI)
	}
	if base.Graph.Username != "neo4j" {
		t.Errorf("unset username should keep default: %s", base.Graph.Username)
	}
	if base.Graph.Password != "secret" {
		t.Errorf("password not merged: %s", base.Graph.Password)
	}
	if base.NATS.Embedded {
		t.Error("explicit NATS URL should disable the embedded server")
	}
	if base.Log.Level != "debug" {
		t.Errorf("log level not merged: %s", base.Log.Level)
	}
}

func TestConfigMergeNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(nil)
	if cfg.Graph.URI != "bolt://localhost:7687" {
		t.Error("merging nil should leave the config untouched")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sysmlstudio.yaml")
	content := []byte("graph:\n  uri: bolt://graph:7687\n  password: secret\nhttp:\n  addr: \":9090\"\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Graph.URI != "bolt://graph:7687" {
		t.Errorf("graph uri = %s", cfg.Graph.URI)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("http addr = %s", cfg.HTTP.Addr)
	}
	// Unset fields keep their defaults.
	if cfg.Graph.Username != "neo4j" {
		t.Errorf("username = %s, want default", cfg.Graph.Username)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Graph.Password = "secret"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Graph.Password != "secret" {
		t.Errorf("password = %s after reload", loaded.Graph.Password)
	}
}
