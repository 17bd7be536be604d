package amplitude

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Content types sent by the client.
const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// httpClient performs single HTTP calls against the Amplitude APIs and
// translates non-2xx replies into APIError values.
type httpClient struct {
	client    *http.Client
	userAgent string
	basicAuth string // empty when no secret key is configured
	hook      HTTPHook
	logger    StructuredLogger
}

// newHTTPClient creates a new HTTP client.
func newHTTPClient(cfg *Config) *httpClient {
	h := &httpClient{
		client:    cfg.HTTPClient,
		userAgent: cfg.UserAgent,
		hook:      combineHooks(cfg.HTTPHooks),
		logger:    cfg.Logger,
	}
	if cfg.SecretKey != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(cfg.APIKey + ":" + cfg.SecretKey))
		h.basicAuth = "Basic " + auth
	}
	return h
}

// request represents an HTTP request to be made.
type request struct {
	method      string
	url         string
	query       url.Values
	body        string
	contentType string
	auth        bool // send basic auth credentials
}

// send executes req exactly once.
//
// On a 2xx reply the response is returned with its body open. A non-2xx
// reply is consumed and returned as *APIError. When no response arrived the
// error from the underlying http.Client is returned as is.
func (h *httpClient) send(ctx context.Context, req *request) (*http.Response, error) {
	u := req.url
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != "" {
		bodyReader = strings.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("amplitude: failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("User-Agent", h.userAgent)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.auth {
		httpReq.Header.Set("Authorization", h.basicAuth)
	}

	if h.hook != nil {
		if err := h.hook.BeforeRequest(ctx, httpReq); err != nil {
			return nil, fmt.Errorf("amplitude: request aborted by hook: %w", err)
		}
	}

	start := time.Now()
	resp, err := h.client.Do(httpReq)
	duration := time.Since(start)

	if h.hook != nil {
		h.hook.AfterResponse(ctx, httpReq, resp, duration, err)
	}

	if err != nil {
		h.logger.Debug("amplitude request failed",
			"method", req.method,
			"path", httpReq.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	h.logger.Debug("amplitude request completed",
		"method", req.method,
		"path", httpReq.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp.StatusCode, body)
	}

	return resp, nil
}

// doRaw executes req and returns the response body.
func (h *httpClient) doRaw(ctx context.Context, req *request) ([]byte, error) {
	resp, err := h.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amplitude: failed to read response body: %w", err)
	}
	return body, nil
}

// doJSON executes req and decodes the JSON response into result.
func (h *httpClient) doJSON(ctx context.Context, req *request, result any) error {
	body, err := h.doRaw(ctx, req)
	if err != nil {
		return err
	}
	if result == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("amplitude: failed to unmarshal response: %w", err)
	}
	return nil
}
