package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Animesh-Ghosh/parking-lot/internal/config"
	"github.com/Animesh-Ghosh/parking-lot/internal/logging"
)

// lockedBuffer is written by the server goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

func TestRequestLogCarriesTraceContext(t *testing.T) {
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	var logs lockedBuffer
	logging.Init(&logs, "parking-lot-test", "test", config.LogConfig{Level: "info", Format: "json"})
	t.Cleanup(func() {
		logging.Init(io.Discard, "parking-lot-test", "test", config.LogConfig{Level: "info", Format: "text"})
	})

	srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/api/parking-lot/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var requestLog map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(logs.Bytes()))
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		if record["msg"] == "http request" {
			requestLog = record
		}
	}

	require.NotNil(t, requestLog)
	assert.NotEmpty(t, requestLog["traceId"])
	assert.NotEmpty(t, requestLog["spanId"])
}
