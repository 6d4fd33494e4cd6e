// Package daemon manages the Daybreak daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Store     StoreConfig     `toml:"store"`
	Engine    EngineConfig    `toml:"engine"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StoreConfig controls the SQLite store.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// EngineConfig controls progress-engine defaults for profiles that
// leave a field unset.
type EngineConfig struct {
	DefaultTimezone  string  `toml:"default_timezone"`
	DefaultDailyCost float64 `toml:"default_daily_cost"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging output. When File is set the daemon
// mirrors its log to that file in addition to stderr.
type LoggingConfig struct {
	File string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := daybreakHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8620,
			CORSOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Dir: homeDir,
		},
		Engine: EngineConfig{
			DefaultTimezone:  domain.DefaultTimezone,
			DefaultDailyCost: domain.DefaultDailyCost,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			File: filepath.Join(homeDir, "daybreak.log"),
		},
	}
}

// LoadConfig reads config from ~/.daybreak/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(daybreakHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Engine.DefaultTimezone == "" {
		cfg.Engine.DefaultTimezone = domain.DefaultTimezone
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = daybreakHome()
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.daybreak/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(daybreakHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// daybreakHome returns the Daybreak data directory.
func daybreakHome() string {
	if env := os.Getenv("DAYBREAK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".daybreak")
}

// Home is exported for use by other packages.
func Home() string {
	return daybreakHome()
}
