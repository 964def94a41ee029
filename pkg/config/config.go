// Package config loads the YAML configuration shared by the isolate CLI and
// server.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/cluso-isolate/pkg/isolation"
	"github.com/dd0wney/cluso-isolate/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvLogLevel = "LOG_LEVEL"
	EnvPort     = "ISOLATE_PORT"
)

// Config is the top-level configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Generator GeneratorConfig `yaml:"generator"`
	Isolation IsolationConfig `yaml:"isolation"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// MaxNetworks bounds the in-memory store; the oldest network is evicted
	MaxNetworks int `yaml:"max_networks"`
}

// GeneratorConfig holds the default network dimensions
type GeneratorConfig struct {
	Systems    int     `yaml:"systems"`
	Connectors int     `yaml:"connectors"`
	Interfaces int     `yaml:"interfaces"`
	Seed       *uint64 `yaml:"seed,omitempty"`
}

// IsolationConfig holds the default isolation parameters
type IsolationConfig struct {
	BatchSize int    `yaml:"batch_size"`
	Criterion string `yaml:"criterion"`
}

// LogConfig configures the default logger
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxNetworks:     100,
		},
		Generator: GeneratorConfig{
			Systems:    10,
			Connectors: 15,
			Interfaces: 8,
		},
		Isolation: IsolationConfig{
			BatchSize: 3,
			Criterion: string(isolation.CriterionLoad),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if port := os.Getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, port, err)
		}
		c.Server.Port = p
	}
	return nil
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	criteria := make([]string, len(isolation.Criteria))
	for i, cr := range isolation.Criteria {
		criteria[i] = cr.String()
	}

	cv := validation.NewConfigValidator("config").
		RangeInt("server.port", c.Server.Port, 1, 65535).
		MinDuration("server.read_timeout", c.Server.ReadTimeout, time.Second).
		MinDuration("server.write_timeout", c.Server.WriteTimeout, time.Second).
		MinDuration("server.idle_timeout", c.Server.IdleTimeout, time.Second).
		MinDuration("server.shutdown_timeout", c.Server.ShutdownTimeout, time.Second).
		RangeInt("server.max_networks", c.Server.MaxNetworks, 1, validation.MaxStoredNetworks).
		RangeInt("generator.systems", c.Generator.Systems, 0, validation.MaxSystems).
		RangeInt("generator.connectors", c.Generator.Connectors, 0, validation.MaxConnectors).
		RangeInt("generator.interfaces", c.Generator.Interfaces, 0, validation.MaxInterfaces).
		RangeInt("isolation.batch_size", c.Isolation.BatchSize, validation.MinBatchSize, validation.MaxBatchSize).
		OneOf("isolation.criterion", c.Isolation.Criterion, criteria).
		OneOf("log.level", strings.ToLower(c.Log.Level), []string{"debug", "info", "warn", "warning", "error"})

	if cv.HasErrors() {
		return fmt.Errorf("invalid configuration: %w", cv.Validate())
	}
	return nil
}

// Addr returns the listen address for the server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
