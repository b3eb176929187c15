package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/pkg/metrics"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newRouter(db Pinger, reg *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Config{
		JWTManager: auth.NewJWTManager("test-secret", time.Hour),
		DB:         db,
		Gatherer:   reg,
	})
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := get(newRouter(pinger{}, nil), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(newRouter(pinger{err: errors.New("connection refused")}, nil), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.IncBookingConflict("parking")

	w := get(newRouter(pinger{}, reg), "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `condo_booking_conflicts_total{service_type="parking"} 1`))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newRouter(pinger{}, nil)

	for _, path := range []string{
		"/v1/auth/me",
		"/v1/apartments/my",
		"/v1/bookings/me",
		"/v1/bills",
		"/v1/transactions",
		"/v1/notifications",
		"/v1/announcements",
	} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path).Code, path)
	}
}
