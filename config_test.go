package amplitude

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	tests := []struct {
		name          string
		config        Config
		wantIngestion string
		wantDashboard string
	}{
		{
			name:          "empty config gets US endpoints",
			config:        Config{},
			wantIngestion: "https://api2.amplitude.com",
			wantDashboard: "https://amplitude.com/api/2",
		},
		{
			name:          "EU region",
			config:        Config{Region: RegionEU},
			wantIngestion: "https://api.eu.amplitude.com",
			wantDashboard: "https://analytics.eu.amplitude.com/api/2",
		},
		{
			name:          "unknown region falls back to US",
			config:        Config{Region: "mars"},
			wantIngestion: "https://api2.amplitude.com",
			wantDashboard: "https://amplitude.com/api/2",
		},
		{
			name:          "custom URLs override region and lose trailing slash",
			config:        Config{Region: RegionEU, IngestionURL: "http://localhost:8080/", DashboardURL: "http://localhost:9090/api/2/"},
			wantIngestion: "http://localhost:8080",
			wantDashboard: "http://localhost:9090/api/2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			cfg.applyDefaults()

			if cfg.IngestionURL != tt.wantIngestion {
				t.Errorf("IngestionURL = %s, want %s", cfg.IngestionURL, tt.wantIngestion)
			}
			if cfg.DashboardURL != tt.wantDashboard {
				t.Errorf("DashboardURL = %s, want %s", cfg.DashboardURL, tt.wantDashboard)
			}
			if cfg.Timeout != DefaultTimeout {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
			}
			if cfg.UserAgent != "amplitude-go/"+Version {
				t.Errorf("UserAgent = %s", cfg.UserAgent)
			}
			if cfg.HTTPClient == nil || cfg.HTTPClient.Timeout != DefaultTimeout {
				t.Error("default HTTP client not configured")
			}
			if _, ok := cfg.Logger.(NopLogger); !ok {
				t.Errorf("Logger = %T, want NopLogger", cfg.Logger)
			}
		})
	}
}

func TestConfigApplyDefaults_KeepsCallerSettings(t *testing.T) {
	custom := &http.Client{}
	logger := NewSlogAdapter(nil)
	cfg := Config{HTTPClient: custom, Logger: logger, Timeout: 5 * time.Second, UserAgent: "app/1.0"}

	cfg.applyDefaults()

	if cfg.HTTPClient != custom {
		t.Error("HTTPClient replaced")
	}
	if cfg.Logger != logger {
		t.Error("Logger replaced")
	}
	if cfg.Timeout != 5*time.Second || cfg.UserAgent != "app/1.0" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigApplyDefaults_Debug(t *testing.T) {
	cfg := Config{Debug: true}
	cfg.applyDefaults()

	if _, ok := cfg.Logger.(*SlogAdapter); !ok {
		t.Errorf("Logger = %T, want *SlogAdapter", cfg.Logger)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := Config{APIKey: "key"}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: ErrMissingAPIKey},
		{name: "missing ingestion url", mutate: func(c *Config) { c.IngestionURL = "" }, wantErr: ErrMissingIngestion},
		{name: "missing dashboard url", mutate: func(c *Config) { c.DashboardURL = "" }, wantErr: ErrMissingDashboard},
		{name: "bad url", mutate: func(c *Config) { c.IngestionURL = "http://[::1" }, wantMsg: "invalid ingestion URL"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantMsg: "negative"},
		{name: "huge timeout", mutate: func(c *Config) { c.Timeout = time.Hour }, wantMsg: "cannot exceed"},
		{name: "negative min id length", mutate: func(c *Config) { c.MinIDLength = -1 }, wantMsg: "min id length"},
		{name: "idle conns", mutate: func(c *Config) { c.MaxIdleConnsPerHost = c.MaxIdleConns + 1 }, wantMsg: "per host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.validate()

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
			case tt.wantMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("err = %v, want message containing %q", err, tt.wantMsg)
				}
			default:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestConfigOptions(t *testing.T) {
	hook := HeaderHook(map[string]string{"X-Test": "1"})
	client := &http.Client{}
	logger := NopLogger{}

	cfg := &Config{}
	for _, opt := range []ConfigOption{
		WithSecretKey("secret"),
		WithUserID("u"),
		WithDeviceID("d"),
		WithSessionID(99),
		WithRegion(RegionEU),
		WithBaseURL("http://base"),
		WithDashboardURL("http://dash"),
		WithHTTPClient(client),
		WithTimeout(3 * time.Second),
		WithMaxIdleConns(20),
		WithMaxIdleConnsPerHost(5),
		WithMinIDLength(1),
		WithAutoInsertID(true),
		WithUserAgent("ua"),
		WithDebug(true),
		WithLogger(logger),
		WithHTTPHooks(hook),
		WithHTTPHooks(hook),
	} {
		opt(cfg)
	}

	if cfg.SecretKey != "secret" || cfg.UserID != "u" || cfg.DeviceID != "d" || cfg.SessionID != 99 {
		t.Errorf("identity options not applied: %+v", cfg)
	}
	if cfg.Region != RegionEU || cfg.IngestionURL != "http://base" || cfg.DashboardURL != "http://dash" {
		t.Errorf("endpoint options not applied: %+v", cfg)
	}
	if cfg.HTTPClient != client || cfg.Timeout != 3*time.Second || cfg.MaxIdleConns != 20 || cfg.MaxIdleConnsPerHost != 5 {
		t.Errorf("transport options not applied: %+v", cfg)
	}
	if cfg.MinIDLength != 1 || !cfg.AutoInsertID || cfg.UserAgent != "ua" || !cfg.Debug {
		t.Errorf("request options not applied: %+v", cfg)
	}
	if cfg.Logger != logger {
		t.Error("WithLogger not applied")
	}
	if len(cfg.HTTPHooks) != 2 {
		t.Errorf("len(HTTPHooks) = %d, want 2", len(cfg.HTTPHooks))
	}
}

func TestConfigIdentity(t *testing.T) {
	cfg := &Config{UserID: "u", DeviceID: "d", SessionID: 7}
	want := Identity{UserID: "u", DeviceID: "d", SessionID: 7}
	if got := cfg.identity(); got != want {
		t.Errorf("identity() = %+v, want %+v", got, want)
	}
}

func TestMaskCredential(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"short":            "****",
		"12345678":         "****",
		"0123456789abcdef": "************cdef",
	}
	for in, want := range tests {
		if got := MaskCredential(in); got != want {
			t.Errorf("MaskCredential(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{APIKey: "0123456789abcdef", SecretKey: "fedcba9876543210"}
	s := cfg.String()
	if strings.Contains(s, "0123456789abcdef") || strings.Contains(s, "fedcba9876543210") {
		t.Errorf("String() leaks credentials: %s", s)
	}
	if !strings.Contains(s, "cdef") {
		t.Errorf("String() = %s, want masked suffix", s)
	}
}

func TestRegionURLs(t *testing.T) {
	tests := []struct {
		region    Region
		ingestion string
		dashboard string
	}{
		{RegionUS, "https://api2.amplitude.com", "https://amplitude.com/api/2"},
		{RegionEU, "https://api.eu.amplitude.com", "https://analytics.eu.amplitude.com/api/2"},
		{"", "https://api2.amplitude.com", "https://amplitude.com/api/2"},
	}
	for _, tt := range tests {
		if got := tt.region.IngestionURL(); got != tt.ingestion {
			t.Errorf("%q.IngestionURL() = %s, want %s", tt.region, got, tt.ingestion)
		}
		if got := tt.region.DashboardURL(); got != tt.dashboard {
			t.Errorf("%q.DashboardURL() = %s, want %s", tt.region, got, tt.dashboard)
		}
	}
	if RegionEU.String() != "eu" {
		t.Errorf("RegionEU.String() = %s", RegionEU.String())
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		_, err := NewFromEnv()
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("err = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("reads variables", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		t.Setenv(EnvSecretKey, "env-secret")
		t.Setenv(EnvRegion, "eu")
		t.Setenv(EnvIngestionURL, "")
		t.Setenv(EnvDashboardURL, "http://dash.local")
		t.Setenv(EnvUserID, "env-user")
		t.Setenv(EnvDeviceID, "env-device")
		t.Setenv(EnvDebug, "1")

		client, err := NewFromEnv()
		if err != nil {
			t.Fatalf("NewFromEnv failed: %v", err)
		}
		cfg := client.Config()
		if cfg.APIKey != "env-key" || cfg.SecretKey != "env-secret" {
			t.Errorf("keys = %s %s", cfg.APIKey, cfg.SecretKey)
		}
		if cfg.IngestionURL != "https://api.eu.amplitude.com" || cfg.DashboardURL != "http://dash.local" {
			t.Errorf("urls = %s %s", cfg.IngestionURL, cfg.DashboardURL)
		}
		if cfg.UserID != "env-user" || cfg.DeviceID != "env-device" || !cfg.Debug {
			t.Errorf("cfg = %s", cfg.String())
		}
	})

	t.Run("options override environment", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		t.Setenv(EnvUserID, "env-user")

		client, err := NewFromEnv(WithUserID("explicit"))
		if err != nil {
			t.Fatalf("NewFromEnv failed: %v", err)
		}
		if got := client.Config().UserID; got != "explicit" {
			t.Errorf("UserID = %s, want explicit", got)
		}
	})
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "amplitude.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("TEST_AMPLITUDE_KEY", "file-key")
	t.Setenv("TEST_AMPLITUDE_SECRET", "file-secret")

	path := writeConfigFile(t, `
api_key: ${TEST_AMPLITUDE_KEY}
secret_key: $TEST_AMPLITUDE_SECRET
region: eu
user_id: backend
session_id: 1700000000000
timeout: 10s
min_id_length: 3
auto_insert_id: true
`)

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if cfg.APIKey != "file-key" || cfg.SecretKey != "file-secret" {
		t.Errorf("keys = %s %s", cfg.APIKey, cfg.SecretKey)
	}
	if cfg.Region != RegionEU || cfg.UserID != "backend" || cfg.SessionID != 1700000000000 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Timeout != 10*time.Second || cfg.MinIDLength != 3 || !cfg.AutoInsertID {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	tests := map[string]string{
		"missing file": filepath.Join(t.TempDir(), "missing.yaml"),
		"bad yaml":     writeConfigFile(t, "api_key: [unterminated"),
		"bad timeout":  writeConfigFile(t, "api_key: k\ntimeout: soon"),
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfigFile(path)
			if !errors.Is(err, ErrInvalidConfigFile) {
				t.Errorf("err = %v, want ErrInvalidConfigFile", err)
			}
			if got := ErrorCodeOf(err); got != ErrCodeConfig {
				t.Errorf("ErrorCodeOf = %s, want CONFIG", got)
			}
		})
	}
}

func TestNewFromFile(t *testing.T) {
	path := writeConfigFile(t, "api_key: file-key\nuser_id: from-file\n")

	client, err := NewFromFile(path, WithDeviceID("opt-device"))
	if err != nil {
		t.Fatalf("NewFromFile failed: %v", err)
	}
	cfg := client.Config()
	if cfg.APIKey != "file-key" || cfg.UserID != "from-file" || cfg.DeviceID != "opt-device" {
		t.Errorf("cfg = %s", cfg.String())
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("AMP_TEST_VAR", "value")

	tests := map[string]string{
		"":                    "",
		"plain":               "plain",
		"${AMP_TEST_VAR}":     "value",
		"$AMP_TEST_VAR":       "value",
		"pre-${AMP_TEST_VAR}": "pre-value",
		"${AMP_UNSET_VAR_X}":  "",
	}
	for in, want := range tests {
		if got := expandEnvVar(in); got != want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", in, got, want)
		}
	}
}
