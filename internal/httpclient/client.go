package httpclient

import (
	"net/http"
	"time"

	"inspector/internal/logging"
)

// New builds the HTTP client shared by every outbound adapter. All platform,
// renderer and LLM calls are bounded by the same request timeout.
func New(timeout time.Duration, logger logging.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: Transport(logger),
	}
}

type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logging.Logger
}

// Transport wraps the default transport with request/response debug logging.
func Transport(logger logging.Logger) http.RoundTripper {
	return &loggingRoundTripper{base: http.DefaultTransport, logger: logging.OrNop(logger)}
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		t.logger.Debug("%s %s failed after %s: %v", req.Method, req.URL.Redacted(), elapsed, err)
		return nil, err
	}
	t.logger.Debug("%s %s -> %d (%s)", req.Method, req.URL.Redacted(), resp.StatusCode, elapsed)
	return resp, nil
}
