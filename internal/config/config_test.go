package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.Server.TimeoutSeconds)
	}
	if cfg.Storage.SQLite.Path == "" {
		t.Error("SQLite path should have a default")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CRM_SERVER_PORT", "9090")
	t.Setenv("CRM_STORAGE_SQLITE_PATH", "/tmp/test.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.SQLite.Path != "/tmp/test.db" {
		t.Errorf("SQLite path = %q, want /tmp/test.db", cfg.Storage.SQLite.Path)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 7000\n  timeout: 10\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("CRM_SERVER_PORT", "7001")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7001 {
		t.Errorf("Port = %d, want env override 7001", cfg.Server.Port)
	}
	if cfg.Server.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10 from file", cfg.Server.TimeoutSeconds)
	}
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Server.Port)
	}
}
