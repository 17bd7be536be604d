// Package amplitudetest provides testing utilities for applications using the
// amplitude-go client.
//
// # Mock Server
//
// Use MockServer to record and inspect HTTP requests:
//
//	server := amplitudetest.NewMockServer()
//	defer server.Close()
//
//	client, _ := amplitude.New("api-key", amplitude.WithBaseURL(server.URL))
//	// ... use client ...
//
//	req := server.LastRequest()
//	// assert on req.Path, req.Form, req.JSON ...
//
// # Test Client
//
// Use NewTestClient for a pre-configured client with a mock server:
//
//	func TestSignup(t *testing.T) {
//	    client, server := amplitudetest.NewTestClient(t)
//
//	    _, _ = client.Track(ctx, amplitude.NewEvent("signup"))
//
//	    if server.RequestCount() != 1 {
//	        t.Error("expected 1 request")
//	    }
//	}
//
// # Network Failures
//
// FailingTransport makes every request fail before reaching a server:
//
//	client, _ := amplitude.New("api-key",
//	    amplitude.WithHTTPClient(&http.Client{Transport: amplitudetest.FailingTransport{}}),
//	)
package amplitudetest
