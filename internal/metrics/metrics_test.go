package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	c := NewCollector()

	handler := c.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `devlink_http_requests_total{method="GET",status_code="418"} 1`)
	assert.Contains(t, body, "devlink_http_request_duration_seconds")
}

func TestRecordLikeTransition(t *testing.T) {
	c := NewCollector()

	c.RecordLikeTransition("like", "ok")
	c.RecordLikeTransition("like", "conflict")
	c.RecordLikeTransition("like", "ok")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `devlink_like_transitions_total{action="like",outcome="ok"} 2`)
	assert.Contains(t, body, `devlink_like_transitions_total{action="like",outcome="conflict"} 1`)
}
