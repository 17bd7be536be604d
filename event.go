package amplitude

import "github.com/google/uuid"

// Event is a single analytics event or identify payload.
//
// Keys may use the canonical snake_case names of the HTTP API ("user_id",
// "event_type") or their camelCase aliases ("userId", "eventType"). When both
// forms of a field are set, the canonical one is sent.
type Event map[string]any

// Canonical keys of the fields that receive client defaults.
const (
	KeyUserID    = "user_id"
	KeyDeviceID  = "device_id"
	KeySessionID = "session_id"
	KeyEventType = "event_type"
	KeyInsertID  = "insert_id"
)

// aliasKeys maps accepted camelCase aliases to their canonical wire keys.
var aliasKeys = map[string]string{
	"userId":             "user_id",
	"deviceId":           "device_id",
	"sessionId":          "session_id",
	"eventType":          "event_type",
	"eventProperties":    "event_properties",
	"userProperties":     "user_properties",
	"appVersion":         "app_version",
	"osName":             "os_name",
	"osVersion":          "os_version",
	"deviceBrand":        "device_brand",
	"deviceManufacturer": "device_manufacturer",
	"deviceModel":        "device_model",
	"locationLat":        "location_lat",
	"locationLng":        "location_lng",
}

// CanonicalKey returns the wire key for key. Keys that are not aliases are
// returned unchanged.
func CanonicalKey(key string) string {
	if canonical, ok := aliasKeys[key]; ok {
		return canonical
	}
	return key
}

// NewEvent returns an event with the given event_type.
func NewEvent(eventType string) Event {
	return Event{KeyEventType: eventType}
}

// Clone returns a shallow copy of the event.
func (e Event) Clone() Event {
	out := make(Event, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Identity holds the identity defaults merged into outgoing events.
type Identity struct {
	UserID    string
	DeviceID  string
	SessionID int64 // zero means unset
}

// NormalizeEvents rewrites alias keys to their canonical form and fills in
// identity defaults. It returns new events in input order and never modifies
// the events passed in.
//
// For user_id, device_id and session_id the event's own value is used when
// set, then the matching default, otherwise the key is left out.
func NormalizeEvents(events []Event, defaults Identity) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = normalizeEvent(e, defaults)
	}
	return out
}

func normalizeEvent(e Event, defaults Identity) Event {
	out := make(Event, len(e)+3)

	for key, value := range e {
		if _, isAlias := aliasKeys[key]; !isAlias {
			out[key] = value
		}
	}
	for key, value := range e {
		canonical, isAlias := aliasKeys[key]
		if !isAlias || value == nil || out[canonical] != nil {
			continue
		}
		out[canonical] = value
	}

	mergeDefault(out, KeyUserID, defaults.UserID, defaults.UserID != "")
	mergeDefault(out, KeyDeviceID, defaults.DeviceID, defaults.DeviceID != "")
	mergeDefault(out, KeySessionID, defaults.SessionID, defaults.SessionID != 0)

	return out
}

// mergeDefault sets key to def when the event has no usable value for it.
// A nil value with no default is dropped so the field is absent on the wire.
func mergeDefault(e Event, key string, def any, hasDefault bool) {
	v, ok := e[key]
	if ok && !isBlank(v) {
		return
	}
	switch {
	case hasDefault:
		e[key] = def
	case ok && v == nil:
		delete(e, key)
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// assignInsertIDs gives every event without an insert_id a random one.
// Events must already be copies owned by the caller.
func assignInsertIDs(events []Event) {
	for _, e := range events {
		if isBlank(e[KeyInsertID]) {
			e[KeyInsertID] = uuid.NewString()
		}
	}
}
