package web

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const requestIDHeader = "X-Request-ID"

var httpRequestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flowpro",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "The total number of HTTP requests",
}, []string{"method", "code"})

// requestID returns the request's X-Request-ID, assigning a new one if the
// client did not send it.
func requestID(r *http.Request) string {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
		r.Header.Set(requestIDHeader, id)
	}
	return id
}

// logWriter is a wrapper around http.ResponseWriter that allows us to capture
// the HTTP status code and bytes written to the response.
type logWriter struct {
	http.ResponseWriter
	code, bytes int
}

var _ http.ResponseWriter = (*logWriter)(nil)

var _ http.Flusher = (*logWriter)(nil)

var _ http.Hijacker = (*logWriter)(nil)

// Write implements http.ResponseWriter.
func (r *logWriter) Write(p []byte) (int, error) {
	written, err := r.ResponseWriter.Write(p)
	r.bytes += written
	return written, err
}

// WriteHeader implements http.ResponseWriter. The code defaults to 200 when
// a handler writes without calling it.
func (r *logWriter) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying http.ResponseWriter.
func (r *logWriter) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Flush implements http.Flusher.
func (r *logWriter) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker.
func (r *logWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, fmt.Errorf("http.Hijacker not implemented")
}

// NewLoggingMiddleware returns a new logging middleware. It also counts
// requests by method and status code.
func NewLoggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := &logWriter{code: http.StatusOK, ResponseWriter: w}
		id := requestID(r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"addr", r.RemoteAddr,
			"request_id", id)
		next.ServeHTTP(writer, r)
		elapsed := time.Since(start)
		httpRequestsCounter.WithLabelValues(r.Method, strconv.Itoa(writer.code)).Inc()
		logger.Debug("response",
			"status", fmt.Sprintf("%d %s", writer.code, http.StatusText(writer.code)),
			"bytes", humanize.Bytes(uint64(writer.bytes)), //nolint:gosec
			"time", elapsed,
			"request_id", id)
	})
}
