// Package amplitude provides a Go client for the Amplitude analytics HTTP APIs.
//
// The client sends events and user property updates to the ingestion API and
// reads raw exports, user lookups and event segmentation results from the
// dashboard API. Each method performs a single HTTP request; there is no
// local queue, batching timer or retry loop.
//
// # Quick Start
//
//	client, err := amplitude.New(os.Getenv("AMPLITUDE_API_KEY"),
//	    amplitude.WithSecretKey(os.Getenv("AMPLITUDE_SECRET_KEY")),
//	    amplitude.WithUserID("user-123"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Track(ctx, amplitude.Event{
//	    "eventType":       "signup",
//	    "eventProperties": map[string]any{"plan": "pro"},
//	})
//
// # Events
//
// An [Event] is a map using the field names of the HTTP API. The camelCase
// forms "userId", "deviceId", "sessionId", "eventType", "eventProperties",
// "userProperties", "appVersion", "osName", "osVersion", "deviceBrand",
// "deviceManufacturer", "deviceModel", "locationLat" and "locationLng" are
// accepted and rewritten to snake_case before sending. Events without
// user_id, device_id or session_id receive the client's defaults.
//
// # Configuration
//
// The client can be configured with options, a [Config] struct, environment
// variables ([NewFromEnv]) or a YAML file ([NewFromFile]):
//
//	client, err := amplitude.New(apiKey,
//	    amplitude.WithRegion(amplitude.RegionEU),
//	    amplitude.WithTimeout(10 * time.Second),
//	    amplitude.WithDebug(true),
//	)
//
// The dashboard methods (Export, UserSearch, UserActivity, EventSegmentation)
// authenticate with HTTP basic auth and need a secret key.
//
// # Error Handling
//
// Missing credentials or parameters are reported as [*ValidationError] before
// any request is sent. Non-2xx replies become [*APIError] carrying the status
// code and the decoded body:
//
//	if _, err := client.Track(ctx, event); err != nil {
//	    if apiErr, ok := amplitude.AsAPIError(err); ok {
//	        log.Printf("rejected with %d: %v", apiErr.StatusCode, apiErr.Body)
//	    }
//	}
//
// Transport failures are returned exactly as the [net/http.Client] reported them.
package amplitude
