package amplitude

import (
	"encoding/json"
	"io"
	"time"
)

// Wire time layouts of the dashboard API.
const (
	// ExportTimeLayout is the hour resolution layout used by the export API.
	ExportTimeLayout = "20060102T15"
	// DateLayout is the day resolution layout used by the query APIs.
	DateLayout = "20060102"
)

// RawBody is an undecoded response body, returned by endpoints whose reply
// is not a structured document (identify answers with plain "success").
type RawBody []byte

// String returns the body as text.
func (b RawBody) String() string {
	return string(b)
}

// Decode unmarshals the body as JSON into v.
func (b RawBody) Decode(v any) error {
	return json.Unmarshal(b, v)
}

// TrackOptions are per-request options of the batch track endpoint.
type TrackOptions struct {
	// MinIDLength overrides the minimum permitted length of user_id and
	// device_id. Zero falls back to Config.MinIDLength.
	MinIDLength int
}

// trackRequest is the JSON body of the batch track endpoint.
type trackRequest struct {
	APIKey  string        `json:"api_key"`
	Events  []Event       `json:"events"`
	Options *trackOptions `json:"options,omitempty"`
}

type trackOptions struct {
	MinIDLength int `json:"min_id_length,omitempty"`
}

// The reply types below decode the documented fields and keep the complete
// reply in Raw, so fields added by the API stay reachable.

// TrackResponse is the reply of the batch track endpoint.
type TrackResponse struct {
	Code             int   `json:"code"`
	ServerUploadTime int64 `json:"server_upload_time"`
	PayloadSizeBytes int   `json:"payload_size_bytes"`
	EventsIngested   int   `json:"events_ingested"`

	// Raw is the undecoded reply.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the reply and keeps a copy of it in Raw.
func (r *TrackResponse) UnmarshalJSON(data []byte) error {
	type plain TrackResponse
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = TrackResponse(v)
	r.Raw = copyRaw(data)
	return nil
}

// ExportOptions selects the time range of a raw event export.
// Both bounds are required and are sent with hour resolution.
type ExportOptions struct {
	Start time.Time
	End   time.Time
}

// ExportResult is a streamed export archive (a zip of gzipped JSON files).
// The caller must close Body.
type ExportResult struct {
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

// Close closes the underlying body.
func (r *ExportResult) Close() error {
	return r.Body.Close()
}

// UserSearchMatch is a single user returned by a user search.
type UserSearchMatch struct {
	AmplitudeID int64  `json:"amplitude_id"`
	UserID      string `json:"user_id"`
	LastSeen    string `json:"last_seen,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Country     string `json:"country,omitempty"`

	// Raw is the undecoded match object.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the match and keeps a copy of it in Raw.
func (m *UserSearchMatch) UnmarshalJSON(data []byte) error {
	type plain UserSearchMatch
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = UserSearchMatch(v)
	m.Raw = copyRaw(data)
	return nil
}

// UserSearchResponse is the reply of the user search endpoint.
type UserSearchResponse struct {
	Matches []UserSearchMatch `json:"matches"`
	Type    string            `json:"type"`

	// Raw is the undecoded reply.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the reply and keeps a copy of it in Raw.
func (r *UserSearchResponse) UnmarshalJSON(data []byte) error {
	type plain UserSearchResponse
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = UserSearchResponse(v)
	r.Raw = copyRaw(data)
	return nil
}

// UserActivityOptions pages through a user's event stream.
type UserActivityOptions struct {
	// Offset is the zero-indexed position of the first event returned.
	Offset int
	// Limit caps the number of events returned (the API allows up to 1000).
	Limit int
}

// UserActivityResponse is the reply of the user activity endpoint.
type UserActivityResponse struct {
	UserData map[string]any   `json:"userData"`
	Events   []map[string]any `json:"events"`

	// Raw is the undecoded reply.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the reply and keeps a copy of it in Raw.
func (r *UserActivityResponse) UnmarshalJSON(data []byte) error {
	type plain UserActivityResponse
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = UserActivityResponse(v)
	r.Raw = copyRaw(data)
	return nil
}

// SegmentationEvent is the typed form of the segmentation "e" parameter.
type SegmentationEvent struct {
	EventType string               `json:"event_type"`
	Filters   []SegmentationFilter `json:"filters,omitempty"`
	GroupBy   []SegmentationGroup  `json:"group_by,omitempty"`
}

// SegmentationFilter restricts a segmentation event by a property value.
type SegmentationFilter struct {
	SubpropType  string   `json:"subprop_type"`
	SubpropKey   string   `json:"subprop_key"`
	SubpropOp    string   `json:"subprop_op"`
	SubpropValue []string `json:"subprop_value"`
}

// SegmentationGroup groups segmentation results by a property.
type SegmentationGroup struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SegmentationOptions are the parameters of an event segmentation query.
type SegmentationOptions struct {
	// Event is the "e" parameter: a JSON string, a SegmentationEvent or any
	// value that encodes to the expected JSON object. Required.
	Event any

	// Start and End bound the query with day resolution. Required.
	Start time.Time
	End   time.Time

	// Metric is the "m" parameter, e.g. "uniques", "totals", "average".
	Metric string

	// Interval is the "i" parameter: 1 daily, 7 weekly, 30 monthly,
	// -300000 realtime, -3600000 hourly.
	Interval int

	// Segments is the "s" parameter, a string or a value encoded as JSON.
	Segments any

	// GroupBy is the "g" parameter.
	GroupBy string

	// Limit caps the number of group by values returned.
	Limit int
}

// SegmentationResponse is the reply of the event segmentation endpoint.
type SegmentationResponse struct {
	Data SegmentationData `json:"data"`

	// Raw is the undecoded reply.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the reply and keeps a copy of it in Raw.
func (r *SegmentationResponse) UnmarshalJSON(data []byte) error {
	type plain SegmentationResponse
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = SegmentationResponse(v)
	r.Raw = copyRaw(data)
	return nil
}

// SegmentationData holds the series of a segmentation query.
type SegmentationData struct {
	Series          [][]float64      `json:"series"`
	SeriesLabels    []any            `json:"seriesLabels"`
	SeriesCollapsed [][]SeriesValue  `json:"seriesCollapsed,omitempty"`
	SeriesMeta      []map[string]any `json:"seriesMeta,omitempty"`
	SeriesIntervals map[string]any   `json:"seriesIntervals,omitempty"`
	XValues         []string         `json:"xValues"`

	// Raw is the undecoded data object.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the series and keeps a copy of the object in Raw.
func (d *SegmentationData) UnmarshalJSON(data []byte) error {
	type plain SegmentationData
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = SegmentationData(v)
	d.Raw = copyRaw(data)
	return nil
}

// SeriesValue is a collapsed series value.
type SeriesValue struct {
	SetID string  `json:"setId"`
	Value float64 `json:"value"`
}

// copyRaw copies data, which json.Unmarshal may reuse after UnmarshalJSON returns.
func copyRaw(data []byte) json.RawMessage {
	return append(json.RawMessage(nil), data...)
}
