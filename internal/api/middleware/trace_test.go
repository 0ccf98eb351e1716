package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("handled")
	})

	rr := httptest.NewRecorder()
	NewTraceMiddleware(base)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, traceID, 32)
	assert.Equal(t, traceID, rr.Header().Get(TraceIDHeader))
	assert.Contains(t, buf.String(), `"trace_id":"`+traceID+`"`)
	assert.Contains(t, buf.String(), `"msg":"handled"`)
}
