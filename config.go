package amplitude

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default configuration values.
const (
	// DefaultTimeout is the request timeout of the default HTTP client.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 100

	// DefaultMaxIdleConnsPerHost is the default maximum idle connections per host.
	DefaultMaxIdleConnsPerHost = 10

	// DefaultIdleConnTimeout is the default timeout for idle connections.
	DefaultIdleConnTimeout = 90 * time.Second

	// MaxTimeout is the maximum allowed request timeout.
	MaxTimeout = 10 * time.Minute
)

// Config holds the configuration for the Amplitude client.
type Config struct {
	// APIKey is the project API key used for ingestion (required).
	APIKey string

	// SecretKey is the project secret key. Only the dashboard endpoints
	// (Export, UserSearch, UserActivity, EventSegmentation) need it.
	SecretKey string

	// UserID is applied to events that carry no user_id.
	UserID string

	// DeviceID is applied to events that carry no device_id.
	DeviceID string

	// SessionID is applied to events that carry no session_id.
	// Zero means no default session.
	SessionID int64

	// Region selects the data residency endpoints.
	// Defaults to RegionUS.
	Region Region

	// IngestionURL overrides the ingestion base URL derived from Region.
	IngestionURL string

	// DashboardURL overrides the dashboard base URL derived from Region.
	DashboardURL string

	// HTTPClient is the HTTP client to use for requests.
	// If not set, a client with Timeout and the connection pool settings
	// below is created.
	HTTPClient *http.Client

	// Timeout is the request timeout of the default HTTP client.
	// Defaults to 30 seconds. Ignored when HTTPClient is set.
	Timeout time.Duration

	// MaxIdleConns controls the maximum number of idle connections.
	MaxIdleConns int

	// MaxIdleConnsPerHost controls the maximum number of idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections are kept.
	IdleConnTimeout time.Duration

	// MinIDLength is sent as options.min_id_length with batch track requests
	// when greater than zero.
	MinIDLength int

	// AutoInsertID assigns a random insert_id to events that have none, so
	// the remote can deduplicate events a caller resends.
	AutoInsertID bool

	// UserAgent overrides the User-Agent header sent with every request.
	UserAgent string

	// Debug enables debug logging to stderr when no Logger is set.
	Debug bool

	// Logger is used for SDK logging. Defaults to NopLogger.
	Logger StructuredLogger

	// HTTPHooks are called before and after each HTTP request.
	HTTPHooks []HTTPHook
}

// String returns a string representation of the config with masked credentials.
// This is safe to use in logs and debug output.
func (c *Config) String() string {
	return fmt.Sprintf("Config{APIKey: %q, SecretKey: %q, Region: %q, IngestionURL: %q, DashboardURL: %q, UserID: %q, DeviceID: %q}",
		MaskCredential(c.APIKey),
		MaskCredential(c.SecretKey),
		c.Region,
		c.IngestionURL,
		c.DashboardURL,
		c.UserID,
		c.DeviceID,
	)
}

// identity returns the configured identity defaults.
func (c *Config) identity() Identity {
	return Identity{
		UserID:    c.UserID,
		DeviceID:  c.DeviceID,
		SessionID: c.SessionID,
	}
}

// applyDefaults sets default values for unset configuration options.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = RegionUS
	}
	if c.IngestionURL == "" {
		c.IngestionURL = c.Region.IngestionURL()
	}
	if c.DashboardURL == "" {
		c.DashboardURL = c.Region.DashboardURL()
	}
	c.IngestionURL = strings.TrimSuffix(c.IngestionURL, "/")
	c.DashboardURL = strings.TrimSuffix(c.DashboardURL, "/")

	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = DefaultIdleConnTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = "amplitude-go/" + Version
	}

	if c.Logger == nil {
		if c.Debug {
			c.Logger = newDebugLogger()
		} else {
			c.Logger = NopLogger{}
		}
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        c.MaxIdleConns,
				MaxIdleConnsPerHost: c.MaxIdleConnsPerHost,
				IdleConnTimeout:     c.IdleConnTimeout,
			},
		}
	}
}

// validate checks that the configuration is valid.
func (c *Config) validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.IngestionURL == "" {
		return ErrMissingIngestion
	}
	if c.DashboardURL == "" {
		return ErrMissingDashboard
	}
	if _, err := url.Parse(c.IngestionURL); err != nil {
		return fmt.Errorf("amplitude: invalid ingestion URL: %w", err)
	}
	if _, err := url.Parse(c.DashboardURL); err != nil {
		return fmt.Errorf("amplitude: invalid dashboard URL: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("amplitude: timeout cannot be negative")
	}
	if c.Timeout > MaxTimeout {
		return fmt.Errorf("amplitude: timeout cannot exceed %v", MaxTimeout)
	}
	if c.MinIDLength < 0 {
		return fmt.Errorf("amplitude: min id length cannot be negative, got %d", c.MinIDLength)
	}
	if c.MaxIdleConnsPerHost > c.MaxIdleConns {
		return fmt.Errorf("amplitude: max idle connections per host (%d) cannot exceed total max idle connections (%d)",
			c.MaxIdleConnsPerHost, c.MaxIdleConns)
	}
	return nil
}

// DefaultConfig returns a configuration with the given API key and the US region.
//
// Example:
//
//	cfg := amplitude.DefaultConfig("api-key")
//	cfg.SecretKey = "secret-key"
//	client, err := amplitude.NewWithConfig(cfg)
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey: apiKey,
		Region: RegionUS,
	}
}

// MaskCredential masks a credential string for safe logging.
// It shows only the last 4 characters.
//
// Examples:
//
//	MaskCredential("0123456789abcdef") => "************cdef"
//	MaskCredential("short") => "****"
func MaskCredential(s string) string {
	if s == "" {
		return ""
	}

	const (
		visibleSuffix = 4
		minMaskLength = 8
	)

	if len(s) <= minMaskLength {
		return "****"
	}
	return strings.Repeat("*", len(s)-visibleSuffix) + s[len(s)-visibleSuffix:]
}
