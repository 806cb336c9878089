package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	requests := NewRequestCounter()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})
	mux.HandleFunc("GET /boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK)
	})
	handler := RequestID(Logging(zap.New(core), requests)(mux))

	for _, path := range []string{"/ok", "/boom", "/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ok", fields["path"])
	assert.EqualValues(t, 200, fields["status"])
	assert.EqualValues(t, 5, fields["bytes"])
	assert.NotEmpty(t, fields["request_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, 500, entries[1].ContextMap()["status"], "first status wins")

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)

	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("GET", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("GET", "404")))
}
