package amplitude

import (
	"context"
	"fmt"
)

// Version is the SDK version sent in the default User-Agent.
const Version = "1.0.0"

// Client is the Amplitude API client.
//
// Every method performs exactly one HTTP request and returns once the reply
// has been read. A Client holds no mutable state after construction and is
// safe for concurrent use.
type Client struct {
	config   *Config
	http     *httpClient
	identity Identity
}

// New creates a new Amplitude client for the project identified by apiKey.
//
// Example:
//
//	client, err := amplitude.New("api-key",
//	    amplitude.WithSecretKey("secret-key"),
//	    amplitude.WithUserID("user-123"),
//	)
func New(apiKey string, opts ...ConfigOption) (*Client, error) {
	cfg := &Config{APIKey: apiKey}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a new Amplitude client from a Config struct.
// The config is copied; later changes to cfg do not affect the client.
//
// Example:
//
//	client, err := amplitude.NewWithConfig(&amplitude.Config{
//	    APIKey:    os.Getenv("AMPLITUDE_API_KEY"),
//	    SecretKey: os.Getenv("AMPLITUDE_SECRET_KEY"),
//	    Region:    amplitude.RegionEU,
//	})
func NewWithConfig(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	cfgCopy := *cfg
	cfgCopy.HTTPHooks = append([]HTTPHook(nil), cfg.HTTPHooks...)
	cfgCopy.applyDefaults()

	if err := cfgCopy.validate(); err != nil {
		return nil, err
	}

	return &Client{
		config:   &cfgCopy,
		http:     newHTTPClient(&cfgCopy),
		identity: cfgCopy.identity(),
	}, nil
}

// Config returns a copy of the client's effective configuration.
func (c *Client) Config() Config {
	return *c.config
}

// Identify sends user property updates to the identify endpoint.
//
// Events are normalized and merged with the client's identity defaults, then
// sent as a JSON array in the form field "identification". The raw reply is
// returned; the API answers with the text "success".
func (c *Client) Identify(ctx context.Context, events ...Event) (RawBody, error) {
	req, err := c.formRequest(pathIdentify, formFieldIdentify, events)
	if err != nil {
		return nil, err
	}
	return c.http.doRaw(ctx, req)
}

// Track sends events to the batch endpoint as a JSON document.
//
// Example:
//
//	resp, err := client.Track(ctx, amplitude.Event{
//	    "event_type":      "signup",
//	    "eventProperties": map[string]any{"plan": "pro"},
//	})
func (c *Client) Track(ctx context.Context, events ...Event) (*TrackResponse, error) {
	return c.TrackWithOptions(ctx, nil, events...)
}

// TrackWithOptions is Track with per-request options.
func (c *Client) TrackWithOptions(ctx context.Context, opts *TrackOptions, events ...Event) (*TrackResponse, error) {
	req, err := c.trackRequest(opts, events)
	if err != nil {
		return nil, err
	}

	var result TrackResponse
	if err := c.http.doJSON(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TrackLegacy sends events form encoded in the field "event" to the original
// HTTP API endpoint, returning the raw reply.
func (c *Client) TrackLegacy(ctx context.Context, events ...Event) (RawBody, error) {
	req, err := c.formRequest(pathHTTPAPI, formFieldEvent, events)
	if err != nil {
		return nil, err
	}
	return c.http.doRaw(ctx, req)
}

// Export downloads the raw events between opts.Start and opts.End.
//
// The reply is a zip archive streamed to the caller, who must close it.
// A secret key is required.
func (c *Client) Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	req, err := c.exportRequest(opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.send(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// UserSearch looks up users by user ID, device ID or Amplitude ID.
// A secret key is required.
func (c *Client) UserSearch(ctx context.Context, user string) (*UserSearchResponse, error) {
	req, err := c.userSearchRequest(user)
	if err != nil {
		return nil, err
	}

	var result UserSearchResponse
	if err := c.http.doJSON(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UserActivity returns the event stream of the user with the given
// Amplitude ID. opts may be nil. A secret key is required.
func (c *Client) UserActivity(ctx context.Context, amplitudeID int64, opts *UserActivityOptions) (*UserActivityResponse, error) {
	req, err := c.userActivityRequest(amplitudeID, opts)
	if err != nil {
		return nil, err
	}

	var result UserActivityResponse
	if err := c.http.doJSON(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EventSegmentation runs an event segmentation query.
// A secret key is required.
func (c *Client) EventSegmentation(ctx context.Context, opts SegmentationOptions) (*SegmentationResponse, error) {
	req, err := c.segmentationRequest(opts)
	if err != nil {
		return nil, err
	}

	var result SegmentationResponse
	if err := c.http.doJSON(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// String returns a description of the client safe for logging.
func (c *Client) String() string {
	return fmt.Sprintf("amplitude.Client{%s}", c.config)
}
