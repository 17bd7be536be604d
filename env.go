package amplitude

import (
	"fmt"
	"os"
)

// Environment variable names for configuration.
const (
	// EnvAPIKey is the environment variable for the project API key.
	EnvAPIKey = "AMPLITUDE_API_KEY"
	// EnvSecretKey is the environment variable for the project secret key.
	EnvSecretKey = "AMPLITUDE_SECRET_KEY"
	// EnvRegion is the environment variable for the data residency region.
	EnvRegion = "AMPLITUDE_REGION"
	// EnvIngestionURL overrides the ingestion base URL.
	EnvIngestionURL = "AMPLITUDE_INGESTION_URL"
	// EnvDashboardURL overrides the dashboard base URL.
	EnvDashboardURL = "AMPLITUDE_DASHBOARD_URL"
	// EnvUserID is the default user_id of outgoing events.
	EnvUserID = "AMPLITUDE_USER_ID"
	// EnvDeviceID is the default device_id of outgoing events.
	EnvDeviceID = "AMPLITUDE_DEVICE_ID"
	// EnvDebug is the environment variable to enable debug mode.
	EnvDebug = "AMPLITUDE_DEBUG"
)

// NewFromEnv creates a new client using environment variables for configuration.
// It reads AMPLITUDE_API_KEY and optionally AMPLITUDE_SECRET_KEY,
// AMPLITUDE_REGION, AMPLITUDE_INGESTION_URL, AMPLITUDE_DASHBOARD_URL,
// AMPLITUDE_USER_ID, AMPLITUDE_DEVICE_ID and AMPLITUDE_DEBUG.
//
// Explicit options take precedence over the environment.
//
// Example:
//
//	client, err := amplitude.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromEnv(opts ...ConfigOption) (*Client, error) {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("amplitude: %s environment variable is required: %w", EnvAPIKey, ErrMissingAPIKey)
	}

	envOpts := envOptions()
	allOpts := append(envOpts, opts...)

	return New(apiKey, allOpts...)
}

// envOptions returns options for the optional environment variables that are set.
func envOptions() []ConfigOption {
	var opts []ConfigOption

	if v := os.Getenv(EnvSecretKey); v != "" {
		opts = append(opts, WithSecretKey(v))
	}
	if v := os.Getenv(EnvRegion); v != "" {
		opts = append(opts, WithRegion(Region(v)))
	}
	if v := os.Getenv(EnvIngestionURL); v != "" {
		opts = append(opts, WithIngestionURL(v))
	}
	if v := os.Getenv(EnvDashboardURL); v != "" {
		opts = append(opts, WithDashboardURL(v))
	}
	if v := os.Getenv(EnvUserID); v != "" {
		opts = append(opts, WithUserID(v))
	}
	if v := os.Getenv(EnvDeviceID); v != "" {
		opts = append(opts, WithDeviceID(v))
	}
	if debug := os.Getenv(EnvDebug); debug == "true" || debug == "1" {
		opts = append(opts, WithDebug(true))
	}

	return opts
}
