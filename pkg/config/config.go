package config

import (
	"encoding/json"

	"github.com/kelseyhightower/envconfig"
)

const (
	DBTypeMemory = "memory"
	DBTypeSQLite = "sqlite"
)

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type string `envconfig:"PURCHASING_DB_TYPE" default:"sqlite"`
	Name string `envconfig:"PURCHASING_DB_NAME" default:"purchasing.db"`
}

type svcConfig struct {
	Address  string `envconfig:"PURCHASING_ADDRESS" default:":8080"`
	LogLevel string `envconfig:"PURCHASING_LOG_LEVEL" default:"info"`
	// RequestLogging enables the per-request access log on the HTTP server
	RequestLogging bool `envconfig:"PURCHASING_REQUEST_LOGGING" default:"true"`
}

// New reads the configuration from the environment
func New() (*Config, error) {
	cfg := NewDefault()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewDefault returns a configuration backed by an in-memory store
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{Type: DBTypeMemory},
		Service:  &svcConfig{Address: ":8080", LogLevel: "info"},
	}
}

func (c *Config) String() string {
	val, _ := json.Marshal(c)
	return string(val)
}
