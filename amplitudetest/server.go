package amplitudetest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"
)

// MockServer is a test HTTP server that records requests for verification.
// It serves both the ingestion and the dashboard paths.
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*RecordedRequest

	// responseFunc customizes responses. If nil, DefaultResponse is used.
	responseFunc ResponseFunc
}

// ResponseFunc produces the status and body for a request. A body of type
// Raw is written as is; any other body is encoded as JSON.
type ResponseFunc func(r *http.Request) (int, any)

// Raw is a response body written without JSON encoding.
type Raw struct {
	ContentType string
	Body        []byte
}

// RecordedRequest represents a recorded HTTP request.
type RecordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        []byte
	ContentType string

	// Form holds the decoded body of form encoded requests.
	Form url.Values

	// Username and Password are the basic auth credentials, if any.
	Username     string
	Password     string
	HasBasicAuth bool
}

// JSON decodes the recorded body into v.
func (r *RecordedRequest) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// FormJSON decodes the JSON carried in form field key into v.
func (r *RecordedRequest) FormJSON(key string, v any) error {
	return json.Unmarshal([]byte(r.Form.Get(key)), v)
}

// NewMockServer creates a new mock server for testing.
func NewMockServer() *MockServer {
	ms := &MockServer{
		requests: make([]*RecordedRequest, 0),
	}

	ms.Server = httptest.NewServer(http.HandlerFunc(ms.handle))

	return ms
}

func (ms *MockServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	rec := &RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		Header:      r.Header.Clone(),
		Body:        body,
		ContentType: r.Header.Get("Content-Type"),
	}
	if strings.HasPrefix(rec.ContentType, "application/x-www-form-urlencoded") {
		rec.Form, _ = url.ParseQuery(string(body))
	}
	rec.Username, rec.Password, rec.HasBasicAuth = r.BasicAuth()

	ms.mu.Lock()
	ms.requests = append(ms.requests, rec)
	fn := ms.responseFunc
	ms.mu.Unlock()

	if fn == nil {
		fn = DefaultResponse
	}
	status, response := fn(withBody(r, body))

	if raw, ok := response.(Raw); ok {
		if raw.ContentType != "" {
			w.Header().Set("Content-Type", raw.ContentType)
		}
		w.WriteHeader(status)
		w.Write(raw.Body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// withBody gives response funcs a readable copy of the consumed body.
func withBody(r *http.Request, body []byte) *http.Request {
	r2 := r.Clone(r.Context())
	r2.Body = io.NopCloser(strings.NewReader(string(body)))
	return r2
}

// DefaultResponse answers like the live APIs do on success: "success" for the
// form endpoints, an upload summary for batch tracking and an empty object
// otherwise.
func DefaultResponse(r *http.Request) (int, any) {
	switch r.URL.Path {
	case "/identify", "/httpapi":
		return http.StatusOK, Raw{ContentType: "text/plain", Body: []byte("success")}
	case "/2/httpapi":
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Events []json.RawMessage `json:"events"`
		}
		json.Unmarshal(body, &payload)
		return http.StatusOK, TrackSuccess(len(payload.Events), len(body))
	default:
		return http.StatusOK, map[string]any{}
	}
}

// TrackSuccess returns a batch upload summary.
func TrackSuccess(eventsIngested, payloadSize int) map[string]any {
	return map[string]any{
		"code":               200,
		"events_ingested":    eventsIngested,
		"payload_size_bytes": payloadSize,
		"server_upload_time": time.Now().UnixMilli(),
	}
}

// Requests returns all recorded requests.
func (ms *MockServer) Requests() []*RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]*RecordedRequest{}, ms.requests...)
}

// RequestCount returns the number of recorded requests.
func (ms *MockServer) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

// Reset clears all recorded requests and the configured response.
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requests = make([]*RecordedRequest, 0)
	ms.responseFunc = nil
}

// LastRequest returns the most recent request, or nil if none.
func (ms *MockServer) LastRequest() *RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		return nil
	}
	return ms.requests[len(ms.requests)-1]
}

// RequestsWithPath returns all requests that matched the given path.
func (ms *MockServer) RequestsWithPath(path string) []*RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	var matched []*RecordedRequest
	for _, req := range ms.requests {
		if req.Path == path {
			matched = append(matched, req)
		}
	}
	return matched
}

// SetResponseFunc sets the response function for customizing responses.
func (ms *MockServer) SetResponseFunc(fn ResponseFunc) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.responseFunc = fn
}

// Response scenarios

// RespondWith configures the server to respond with a custom status and body.
func (ms *MockServer) RespondWith(statusCode int, body any) {
	ms.SetResponseFunc(func(r *http.Request) (int, any) {
		return statusCode, body
	})
}

// RespondWithRaw configures the server to respond with an unencoded body.
func (ms *MockServer) RespondWithRaw(statusCode int, contentType string, body []byte) {
	ms.RespondWith(statusCode, Raw{ContentType: contentType, Body: body})
}

// RespondWithError configures the server to respond with an error.
func (ms *MockServer) RespondWithError(statusCode int, message string) {
	ms.RespondWith(statusCode, map[string]any{
		"code":  statusCode,
		"error": message,
	})
}

// RespondWithRateLimit configures the server to respond with a throttling error.
func (ms *MockServer) RespondWithRateLimit() {
	ms.RespondWithError(http.StatusTooManyRequests, "Too many requests for some devices and users")
}

// RespondWithUnauthorized configures the server to reject the credentials.
func (ms *MockServer) RespondWithUnauthorized() {
	ms.RespondWithError(http.StatusUnauthorized, "Invalid API key")
}

// RespondWithServerError configures the server to respond with a 500 error.
func (ms *MockServer) RespondWithServerError() {
	ms.RespondWithError(http.StatusInternalServerError, "Internal server error")
}
