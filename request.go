package amplitude

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jdziat/amplitude-go/internal/wire"
)

// API paths.
const (
	pathIdentify      = "/identify"
	pathHTTPAPI       = "/httpapi"
	pathBatchTrack    = "/2/httpapi"
	pathExport        = "/export"
	pathUserSearch    = "/usersearch"
	pathUserActivity  = "/useractivity"
	pathSegmentation  = "/events/segmentation"
	formFieldIdentify = "identification"
	formFieldEvent    = "event"
)

// prepareEvents normalizes events and applies the configured insert_id policy.
func (c *Client) prepareEvents(events []Event) []Event {
	normalized := NormalizeEvents(events, c.identity)
	if c.config.AutoInsertID {
		assignInsertIDs(normalized)
	}
	return normalized
}

// formRequest builds a form encoded ingestion request carrying the events as
// a JSON array in field.
func (c *Client) formRequest(path, field string, events []Event) (*request, error) {
	body, err := wire.EncodeForm(
		wire.Param{Key: "api_key", Value: c.config.APIKey},
		wire.Param{Key: field, Value: c.prepareEvents(events)},
	)
	if err != nil {
		return nil, fmt.Errorf("amplitude: failed to encode request: %w", err)
	}
	return &request{
		method:      http.MethodPost,
		url:         c.config.IngestionURL + path,
		body:        body,
		contentType: contentTypeForm,
	}, nil
}

// trackRequest builds the JSON body of a batch track call.
func (c *Client) trackRequest(opts *TrackOptions, events []Event) (*request, error) {
	payload := trackRequest{
		APIKey: c.config.APIKey,
		Events: c.prepareEvents(events),
	}

	minIDLength := c.config.MinIDLength
	if opts != nil && opts.MinIDLength > 0 {
		minIDLength = opts.MinIDLength
	}
	if minIDLength > 0 {
		payload.Options = &trackOptions{MinIDLength: minIDLength}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("amplitude: failed to marshal request body: %w", err)
	}
	return &request{
		method:      http.MethodPost,
		url:         c.config.IngestionURL + pathBatchTrack,
		body:        string(body),
		contentType: contentTypeJSON,
	}, nil
}

// dashboardRequest builds an authenticated GET against the dashboard API.
func (c *Client) dashboardRequest(path string, query url.Values) *request {
	return &request{
		method: http.MethodGet,
		url:    c.config.DashboardURL + path,
		query:  query,
		auth:   true,
	}
}

func (c *Client) exportRequest(opts ExportOptions) (*request, error) {
	const op = "export"
	if c.config.SecretKey == "" {
		return nil, missingSecretKey(op)
	}
	if opts.Start.IsZero() || opts.End.IsZero() {
		return nil, newValidationError(op, "`start` and `end`", "are required options")
	}

	q := url.Values{}
	q.Set("start", opts.Start.UTC().Format(ExportTimeLayout))
	q.Set("end", opts.End.UTC().Format(ExportTimeLayout))
	return c.dashboardRequest(pathExport, q), nil
}

func (c *Client) userSearchRequest(user string) (*request, error) {
	const op = "userSearch"
	if c.config.SecretKey == "" {
		return nil, missingSecretKey(op)
	}
	if user == "" {
		return nil, newValidationError(op, "user", "value to search for must be passed")
	}

	q := url.Values{}
	q.Set("user", user)
	return c.dashboardRequest(pathUserSearch, q), nil
}

func (c *Client) userActivityRequest(amplitudeID int64, opts *UserActivityOptions) (*request, error) {
	const op = "userActivity"
	if c.config.SecretKey == "" {
		return nil, missingSecretKey(op)
	}
	if amplitudeID == 0 {
		return nil, newValidationError(op, "amplitudeID", "must be passed")
	}

	q := url.Values{}
	q.Set("user", strconv.FormatInt(amplitudeID, 10))
	if opts != nil {
		if opts.Offset > 0 {
			q.Set("offset", strconv.Itoa(opts.Offset))
		}
		if opts.Limit > 0 {
			q.Set("limit", strconv.Itoa(opts.Limit))
		}
	}
	return c.dashboardRequest(pathUserActivity, q), nil
}

func (c *Client) segmentationRequest(opts SegmentationOptions) (*request, error) {
	const op = "eventSegmentation"
	if c.config.SecretKey == "" {
		return nil, missingSecretKey(op)
	}
	if isBlank(opts.Event) || opts.Start.IsZero() || opts.End.IsZero() {
		return nil, newValidationError(op, "`e`, `start` and `end`", "are required data properties")
	}

	e, err := wire.StringOrJSON(opts.Event)
	if err != nil {
		return nil, fmt.Errorf("amplitude: failed to encode segmentation event: %w", err)
	}

	q := url.Values{}
	q.Set("e", e)
	q.Set("start", opts.Start.UTC().Format(DateLayout))
	q.Set("end", opts.End.UTC().Format(DateLayout))
	if opts.Metric != "" {
		q.Set("m", opts.Metric)
	}
	if opts.Interval != 0 {
		q.Set("i", strconv.Itoa(opts.Interval))
	}
	if opts.Segments != nil {
		s, err := wire.StringOrJSON(opts.Segments)
		if err != nil {
			return nil, fmt.Errorf("amplitude: failed to encode segments: %w", err)
		}
		q.Set("s", s)
	}
	if opts.GroupBy != "" {
		q.Set("g", opts.GroupBy)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	return c.dashboardRequest(pathSegmentation, q), nil
}
