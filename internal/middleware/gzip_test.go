package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsJSON = `[{"id":"r1","category":"Sleep","categoryValue":"Under6h"}]`

func recordsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Content-Length несжатого тела должен быть убран при сжатии
		w.Header().Set("Content-Length", strconv.Itoa(len(recordsJSON)))
		_, _ = w.Write([]byte(recordsJSON))
	})
}

func TestWithGzip_NoAcceptEncoding(t *testing.T) {
	rr := httptest.NewRecorder()
	WithGzip(recordsHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/records", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, recordsJSON, rr.Body.String())
}

func TestWithGzip_WithAcceptEncoding(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()
	WithGzip(recordsHandler()).ServeHTTP(rr, req)

	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Empty(t, rr.Header().Get("Content-Length"))

	gr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer gr.Close()
	data, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, recordsJSON, string(data))
}

func TestWithGzip_SkipsEventStream(t *testing.T) {
	h := WithGzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("event: snapshot\ndata: []\n\n"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/records/stream", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Accept", "text/event-stream")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "event: snapshot\ndata: []\n\n", rr.Body.String())
}
