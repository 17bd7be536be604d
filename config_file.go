package amplitude

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML representation of Config.
//
//	api_key: ${AMPLITUDE_API_KEY}
//	secret_key: ${AMPLITUDE_SECRET_KEY}
//	region: eu
//	user_id: backend
//	timeout: 10s
type fileConfig struct {
	APIKey       string `yaml:"api_key"`
	SecretKey    string `yaml:"secret_key"`
	Region       string `yaml:"region"`
	IngestionURL string `yaml:"ingestion_url"`
	DashboardURL string `yaml:"dashboard_url"`
	UserID       string `yaml:"user_id"`
	DeviceID     string `yaml:"device_id"`
	SessionID    int64  `yaml:"session_id"`
	Timeout      string `yaml:"timeout"`
	MinIDLength  int    `yaml:"min_id_length"`
	AutoInsertID bool   `yaml:"auto_insert_id"`
	UserAgent    string `yaml:"user_agent"`
	Debug        bool   `yaml:"debug"`
}

var envRefPattern = regexp.MustCompile(`\$\{?([A-Za-z_][A-Za-z0-9_]*)\}?`)

// expandEnvVar replaces ${VAR} and $VAR references with their values.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}
	return envRefPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "${")
		name = strings.TrimPrefix(name, "$")
		name = strings.TrimSuffix(name, "}")
		return os.Getenv(name)
	})
}

// LoadConfigFile reads a YAML configuration file.
// Environment references in credential and URL fields are expanded.
// The returned config has no defaults applied.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}

	cfg := &Config{
		APIKey:       expandEnvVar(fc.APIKey),
		SecretKey:    expandEnvVar(fc.SecretKey),
		Region:       Region(fc.Region),
		IngestionURL: expandEnvVar(fc.IngestionURL),
		DashboardURL: expandEnvVar(fc.DashboardURL),
		UserID:       fc.UserID,
		DeviceID:     fc.DeviceID,
		SessionID:    fc.SessionID,
		MinIDLength:  fc.MinIDLength,
		AutoInsertID: fc.AutoInsertID,
		UserAgent:    fc.UserAgent,
		Debug:        fc.Debug,
	}

	if fc.Timeout != "" {
		timeout, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: timeout: %w", ErrInvalidConfigFile, err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// NewFromFile creates a new client from a YAML configuration file.
// Options are applied after the file and take precedence over it.
func NewFromFile(path string, opts ...ConfigOption) (*Client, error) {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewWithConfig(cfg)
}
