package amplitude

import (
	"context"
	"net/http"
	"time"
)

// HTTPHook allows customizing HTTP request/response handling.
// Hooks are called in order before a request and in reverse order after it.
//
// Example:
//
//	client, _ := amplitude.New(apiKey,
//	    amplitude.WithHTTPHooks(
//	        amplitude.HeaderHook(map[string]string{"X-Team": "growth"}),
//	        amplitude.LoggingHook(logger),
//	    ),
//	)
type HTTPHook interface {
	// BeforeRequest is called before sending the HTTP request.
	// It can modify the request and return an error to abort it.
	BeforeRequest(ctx context.Context, req *http.Request) error

	// AfterResponse is called after the request completes.
	// resp is nil when err is set.
	AfterResponse(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error)
}

// HTTPHookFunc is a function adapter for simple hooks.
type HTTPHookFunc struct {
	Before func(ctx context.Context, req *http.Request) error
	After  func(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error)
}

// BeforeRequest implements HTTPHook.
func (f HTTPHookFunc) BeforeRequest(ctx context.Context, req *http.Request) error {
	if f.Before != nil {
		return f.Before(ctx, req)
	}
	return nil
}

// AfterResponse implements HTTPHook.
func (f HTTPHookFunc) AfterResponse(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error) {
	if f.After != nil {
		f.After(ctx, req, resp, duration, err)
	}
}

// hookChain combines multiple hooks into a single hook.
type hookChain struct {
	hooks []HTTPHook
}

// BeforeRequest calls all hooks in order.
func (c *hookChain) BeforeRequest(ctx context.Context, req *http.Request) error {
	for _, hook := range c.hooks {
		if err := hook.BeforeRequest(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// AfterResponse calls all hooks in reverse order (like a defer stack).
func (c *hookChain) AfterResponse(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error) {
	for i := len(c.hooks) - 1; i >= 0; i-- {
		c.hooks[i].AfterResponse(ctx, req, resp, duration, err)
	}
}

// combineHooks combines multiple hooks into a single hook.
// If there are no hooks, returns nil. If there is one hook, returns it directly.
func combineHooks(hooks []HTTPHook) HTTPHook {
	if len(hooks) == 0 {
		return nil
	}
	if len(hooks) == 1 {
		return hooks[0]
	}
	return &hookChain{hooks: append([]HTTPHook(nil), hooks...)}
}

// HeaderHook creates a hook that adds custom headers to all requests.
func HeaderHook(headers map[string]string) HTTPHook {
	return HTTPHookFunc{
		Before: func(ctx context.Context, req *http.Request) error {
			for k, v := range headers {
				req.Header.Set(k, v)
			}
			return nil
		},
	}
}

// LoggingHook creates a hook that logs every request at info level.
// The Authorization header and request bodies are never logged.
func LoggingHook(logger StructuredLogger) HTTPHook {
	return HTTPHookFunc{
		After: func(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error) {
			if err != nil {
				logger.Info("amplitude request failed",
					"method", req.Method,
					"path", req.URL.Path,
					"duration_ms", duration.Milliseconds(),
					"error", err.Error(),
				)
				return
			}
			logger.Info("amplitude request completed",
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode,
				"duration_ms", duration.Milliseconds(),
			)
		},
	}
}
