package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-cleanhttp"
)

// UserAgent identifies the checker to status page operators.
const UserAgent = "CloudStatusChecker/1.0"

// maxResponseBodySize caps how much of a status page is read. The GCP
// incident feed is several megabytes, so the cap is well above that.
const maxResponseBodySize = 32 << 20 // 32MB

// Kind classifies a fetch failure.
type Kind int

const (
	// KindNetwork covers DNS, connection, timeout and HTTP error responses.
	KindNetwork Kind = iota

	// KindRead covers failures while reading the response body.
	KindRead

	// KindDecode covers bodies that are not valid UTF-8.
	KindDecode
)

// String returns a lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRead:
		return "read"
	case KindDecode:
		return "decode"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is returned in [Response.Error] when a fetch fails.
//
// Error renders as a short human-readable reason, e.g.
// "Network error: timed out", suitable for showing directly to users.
// The underlying cause is available through errors.Unwrap.
type Error struct {
	Kind   Kind
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		return "Network error: " + e.Reason
	}
	return e.Reason
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Response holds the result of an HTTP request made by [Client].
//
// Response captures the decoded body, status code, latency, and any error
// that occurred.
type Response struct {
	// Body contains the UTF-8 decoded response body.
	Body string

	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error is nil on success and a *[Error] otherwise.
	Error error
}

// Client is an HTTP client wrapper for fetching status pages.
//
// Client uses per-request timeouts via context rather than a global timeout.
// It does not retry and follows redirects with the net/http default policy.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new fetch [Client] backed by a pooled cleanhttp client.
func NewClient() *Client {
	return &Client{
		httpClient: cleanhttp.DefaultPooledClient(),
	}
}

// Fetch performs a GET request and returns a structured [Response].
//
// The timeout is applied via context cancellation. Responses with a status
// code of 400 or above are reported as network errors carrying the reason
// phrase, e.g. "Network error: Service Unavailable".
//
// Fetch always returns a Response; errors are captured in the Error field
// rather than returned separately.
func (c *Client) Fetch(ctx context.Context, rawURL string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   &Error{Kind: KindNetwork, URL: rawURL, Reason: err.Error(), Err: err},
		}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   &Error{Kind: KindNetwork, URL: rawURL, Reason: networkReason(err), Err: err},
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      &Error{Kind: KindNetwork, URL: rawURL, Reason: statusReason(resp.StatusCode)},
		}
	}

	// read one byte past the cap so oversized bodies are detected
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize+1))
	if err != nil {
		reason := err.Error()
		if isTimeout(err) {
			reason = "timed out"
		}
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      &Error{Kind: KindRead, URL: rawURL, Reason: reason, Err: err},
		}
	}
	if len(body) > maxResponseBodySize {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error: &Error{
				Kind:   KindRead,
				URL:    rawURL,
				Reason: fmt.Sprintf("response body exceeds %d bytes", maxResponseBodySize),
			},
		}
	}

	if !utf8.Valid(body) {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      &Error{Kind: KindDecode, URL: rawURL, Reason: "response body is not valid UTF-8"},
		}
	}

	return Response{
		Body:       string(body),
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times. After Close, the client remains usable but
// new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}

// networkReason extracts the human-readable cause of a transport failure.
func networkReason(err error) string {
	if isTimeout(err) {
		return "timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// isTimeout reports whether err was caused by a deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusReason returns the reason phrase for an HTTP error status.
func statusReason(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "HTTP " + strconv.Itoa(code)
}
