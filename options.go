package amplitude

import (
	"net/http"
	"time"
)

// ConfigOption is a function that modifies a Config.
type ConfigOption func(*Config)

// WithSecretKey sets the secret key required by the dashboard endpoints.
func WithSecretKey(secretKey string) ConfigOption {
	return func(c *Config) {
		c.SecretKey = secretKey
	}
}

// WithUserID sets the default user_id applied to events without one.
func WithUserID(userID string) ConfigOption {
	return func(c *Config) {
		c.UserID = userID
	}
}

// WithDeviceID sets the default device_id applied to events without one.
func WithDeviceID(deviceID string) ConfigOption {
	return func(c *Config) {
		c.DeviceID = deviceID
	}
}

// WithSessionID sets the default session_id applied to events without one.
func WithSessionID(sessionID int64) ConfigOption {
	return func(c *Config) {
		c.SessionID = sessionID
	}
}

// WithRegion sets the data residency region.
func WithRegion(region Region) ConfigOption {
	return func(c *Config) {
		c.Region = region
	}
}

// WithIngestionURL overrides the ingestion API base URL.
func WithIngestionURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.IngestionURL = baseURL
	}
}

// WithDashboardURL overrides the dashboard API base URL.
func WithDashboardURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.DashboardURL = baseURL
	}
}

// WithBaseURL points both the ingestion and dashboard APIs at the same
// server. Mostly useful against a mock server in tests.
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.IngestionURL = baseURL
		c.DashboardURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ConfigOption {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxIdleConns sets the maximum number of idle connections.
func WithMaxIdleConns(n int) ConfigOption {
	return func(c *Config) {
		c.MaxIdleConns = n
	}
}

// WithMaxIdleConnsPerHost sets the maximum number of idle connections per host.
func WithMaxIdleConnsPerHost(n int) ConfigOption {
	return func(c *Config) {
		c.MaxIdleConnsPerHost = n
	}
}

// WithMinIDLength sets the default min_id_length option for batch tracking.
func WithMinIDLength(n int) ConfigOption {
	return func(c *Config) {
		c.MinIDLength = n
	}
}

// WithAutoInsertID enables random insert_id assignment for events without one.
func WithAutoInsertID(enabled bool) ConfigOption {
	return func(c *Config) {
		c.AutoInsertID = enabled
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) ConfigOption {
	return func(c *Config) {
		c.UserAgent = userAgent
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) ConfigOption {
	return func(c *Config) {
		c.Debug = debug
	}
}

// WithLogger sets a structured logger.
//
// Example with slog:
//
//	client, _ := amplitude.New(apiKey,
//	    amplitude.WithLogger(amplitude.NewSlogAdapter(slog.Default())),
//	)
func WithLogger(logger StructuredLogger) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithHTTPHooks appends HTTP hooks called around every request.
func WithHTTPHooks(hooks ...HTTPHook) ConfigOption {
	return func(c *Config) {
		c.HTTPHooks = append(c.HTTPHooks, hooks...)
	}
}

// WithMetrics records request statistics to m through a MetricsHook.
func WithMetrics(m Metrics) ConfigOption {
	return func(c *Config) {
		c.HTTPHooks = append(c.HTTPHooks, MetricsHook(m))
	}
}
