package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-directory configuration file.
const ConfigFileName = "cuebook.yaml"

// Config is the file/environment configuration consumed by the CLI.
// Precedence: flags > environment > config file > defaults.
type Config struct {
	Adapter     string `yaml:"adapter"`      // "fs", "memory" or "redis"
	Path        string `yaml:"path"`         // fs store directory
	RedisURL    string `yaml:"redis_url"`    // redis connection string
	SystemDir   string `yaml:"system_dir"`   // fs hidden directory name
	EventBuffer int    `yaml:"event_buffer"` // per-subscriber buffer size
	ReadOnly    bool   `yaml:"read_only"`
}

// LoadConfig reads configuration, looking for cuebook.yaml upwards from
// startDir, then applying environment variables over it.
func LoadConfig(startDir string) (Config, error) {
	cfg := Config{
		Adapter:  "fs",
		Path:     defaultStorePath(),
		RedisURL: getenv("CUEBOOK_REDIS_URL", "redis://localhost:6379/0"),
	}

	if path, ok := findConfigFile(startDir); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("CUEBOOK_ADAPTER"); v != "" {
		cfg.Adapter = v
	}
	if v := os.Getenv("CUEBOOK_PATH"); v != "" {
		cfg.Path = v
	}
	if v := os.Getenv("CUEBOOK_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	return cfg, nil
}

// URI resolves the adapter-specific connection argument.
func (c Config) URI() string {
	if c.Adapter == "redis" {
		return c.RedisURL
	}
	return c.Path
}

// findConfigFile walks upwards from startDir looking for cuebook.yaml.
func findConfigFile(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cuebook-data"
	}
	return filepath.Join(home, ".cuebook-data")
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
