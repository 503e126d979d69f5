package server

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cyclopcam/dbh"
)

type Config struct {
	DB         dbh.DBConfig  `json:"db"`
	HTTP       HTTPConfig    `json:"http"`
	Backend    BackendConfig `json:"backend"`
	StaticRoot string        `json:"staticRoot"` // Path to the built frontend assets
}

type HTTPConfig struct {
	Port string `json:"port"` // eg ":8080"
}

type BackendConfig struct {
	URL            string `json:"url"`   // Base URL of the upstream REST API
	Token          string `json:"token"` // Service bearer token for upstream calls
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

func (b *BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// LoadConfig reads the JSON config file. URIGHT_BACKEND_URL and
// URIGHT_BACKEND_TOKEN environment variables override the file, so that
// secrets can stay out of the config on dev machines.
func LoadConfig(configFile string) (*Config, error) {
	cfg := &Config{}
	if cfgB, err := os.ReadFile(configFile); err != nil {
		return nil, err
	} else {
		if err := json.Unmarshal(cfgB, cfg); err != nil {
			return nil, fmt.Errorf("Error parsing config file %v: %w", configFile, err)
		}
	}
	if v := os.Getenv("URIGHT_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("URIGHT_BACKEND_TOKEN"); v != "" {
		cfg.Backend.Token = v
	}
	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("Config must specify backend.url (or URIGHT_BACKEND_URL)")
	}
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = ":8080"
	}
	return cfg, nil
}
