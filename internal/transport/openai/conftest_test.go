package openai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// newTestServer runs an httptest server and returns it with its /v1 base URL.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, srv.URL + "/v1"
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
