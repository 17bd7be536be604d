package amplitude

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Metrics is implemented by metrics backends that record request statistics.
type Metrics interface {
	// IncrementCounter increments a counter metric.
	IncrementCounter(name string, value int64)
	// RecordDuration records a duration metric.
	RecordDuration(name string, duration time.Duration)
}

// Metric names recorded by MetricsHook.
const (
	MetricRequests       = "amplitude.http.requests"
	MetricErrors         = "amplitude.http.errors"
	MetricDuration       = "amplitude.http.duration"
	MetricStatusPrefix   = "amplitude.http.status."
	MetricEndpointPrefix = "amplitude.http.endpoint."
)

// MetricsHook creates a hook that records request counts, durations and
// status codes. Transport failures count as errors; non-2xx replies are
// counted by status only.
func MetricsHook(m Metrics) HTTPHook {
	if m == nil {
		return HTTPHookFunc{}
	}
	return HTTPHookFunc{
		After: func(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error) {
			m.IncrementCounter(MetricRequests, 1)
			m.IncrementCounter(MetricEndpointPrefix+req.URL.Path, 1)
			m.RecordDuration(MetricDuration, duration)

			if err != nil {
				m.IncrementCounter(MetricErrors, 1)
				return
			}
			m.IncrementCounter(MetricStatusPrefix+strconv.Itoa(resp.StatusCode), 1)
		},
	}
}
