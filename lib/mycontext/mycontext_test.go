package mycontext

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	t.Run("Trace from header", func(t *testing.T) {
		t.Setenv("GOOGLE_CLOUD_PROJECT", "myproject")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Cloud-Trace-Context", "105445aa7843bc8bf206b12000100000/1;o=1")

		c := ContextFromHTTPRequest(r)
		assert.Equal(t, "projects/myproject/traces/105445aa7843bc8bf206b12000100000", Trace(c))
	})

	t.Run("No trace header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", Trace(ContextFromHTTPRequest(r)))
	})

	t.Run("Cancellation propagates", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(parent)

		c := ContextFromHTTPRequest(r)
		cancel()
		assert.ErrorIs(t, c.Err(), context.Canceled)
	})

	t.Run("Request id", func(t *testing.T) {
		c := WithRequestID(context.Background(), "req-1")
		assert.Equal(t, "req-1", RequestID(c))
		assert.Equal(t, "", RequestID(context.Background()))
	})
}
