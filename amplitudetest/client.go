package amplitudetest

import (
	amplitude "github.com/jdziat/amplitude-go"
)

// TestingT is an interface that matches *testing.T and *testing.B.
type TestingT interface {
	Fatalf(format string, args ...any)
	Cleanup(func())
	Helper()
}

// TestAPIKey is the default test API key.
const TestAPIKey = "test-api-key-0001"

// TestSecretKey is the default test secret key.
const TestSecretKey = "test-secret-key-0001"

// NewTestClient creates a client with both keys set, pointed at a mock server.
// The server is closed automatically when the test ends.
func NewTestClient(t TestingT) (*amplitude.Client, *MockServer) {
	t.Helper()
	return NewTestClientWithConfig(t, amplitude.WithSecretKey(TestSecretKey))
}

// NewTestClientWithConfig creates a client with custom configuration for testing.
// The mock server URL is applied first, then the provided options.
// No secret key is set unless an option provides one.
func NewTestClientWithConfig(t TestingT, opts ...amplitude.ConfigOption) (*amplitude.Client, *MockServer) {
	t.Helper()

	server := NewMockServer()

	allOpts := append([]amplitude.ConfigOption{amplitude.WithBaseURL(server.URL)}, opts...)

	client, err := amplitude.New(TestAPIKey, allOpts...)
	if err != nil {
		server.Close()
		t.Fatalf("Failed to create test client: %v", err)
	}

	t.Cleanup(server.Close)

	return client, server
}
