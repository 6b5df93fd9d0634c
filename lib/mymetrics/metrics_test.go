package mymetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("counters", func(t *testing.T) {
		m := New()

		m.HandshakeOutcome("success")
		m.HandshakeOutcome("success")
		m.HandshakeOutcome("exchange_error")
		m.GateDecision("redirected")

		assert.Equal(t, 2.0, testutil.ToFloat64(m.handshake.WithLabelValues("success")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.handshake.WithLabelValues("exchange_error")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.gate.WithLabelValues("redirected")))
	})

	t.Run("exposition", func(t *testing.T) {
		m := New()
		m.GateDecision("admitted")

		response := httptest.NewRecorder()
		m.Handler().ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `shopauth_gate_decisions_total{decision="admitted"} 1`)
	})
}
