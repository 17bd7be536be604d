package amplitude

import "github.com/mileusna/useragent"

// Platform values derived from a User-Agent string.
const (
	PlatformWeb     = "Web"
	PlatformIOS     = "iOS"
	PlatformAndroid = "Android"
)

// WithUserAgent returns a copy of the event with device fields derived from
// a browser or app User-Agent string: os_name, os_version, device_model and
// platform. Fields the event already carries, in canonical or alias form,
// are kept.
//
// Example:
//
//	event := amplitude.NewEvent("page_view").WithUserAgent(r.UserAgent())
func (e Event) WithUserAgent(ua string) Event {
	out := e.Clone()
	if ua == "" {
		return out
	}

	parsed := useragent.Parse(ua)

	setIfAbsent(out, "os_name", parsed.OS)
	setIfAbsent(out, "os_version", parsed.OSVersion)
	setIfAbsent(out, "device_model", parsed.Device)
	setIfAbsent(out, "platform", platformOf(parsed))

	return out
}

func platformOf(ua useragent.UserAgent) string {
	switch {
	case ua.IsIOS():
		return PlatformIOS
	case ua.IsAndroid():
		return PlatformAndroid
	case ua.OS != "":
		return PlatformWeb
	default:
		return ""
	}
}

// setIfAbsent sets key unless value is empty or the event already has the
// field under its canonical key or any alias of it.
func setIfAbsent(e Event, key, value string) {
	if value == "" {
		return
	}
	for k, v := range e {
		if CanonicalKey(k) == key && !isBlank(v) {
			return
		}
	}
	e[key] = value
}
