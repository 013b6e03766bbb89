// Package config loads server configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
	// TimeoutSeconds bounds every request, including the timeline fan-out,
	// which relies on it as its only cancellation source.
	TimeoutSeconds int `koanf:"timeout"`
}

type StorageConfig struct {
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// Load reads configPath (ignored when empty or missing) and then applies
// CRM_-prefixed environment variables on top, e.g. CRM_SERVER_PORT.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil && !strings.Contains(err.Error(), "no such file") {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("CRM_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CRM_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("server.timeout") {
		k.Set("server.timeout", 30)
	}
	if !k.Exists("storage.sqlite.path") {
		k.Set("storage.sqlite.path", "./data/crm.db")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
