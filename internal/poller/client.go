package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// requestTimeout bounds every call. Callers must never block indefinitely;
// a poll that outlives the timeout completes as a transport error.
const requestTimeout = 2 * time.Second

const maxResponseBodySize = 1 << 20 // 1MB

// debugBodyLimit caps how much of a body appears in debug logs.
const debugBodyLimit = 100

// connection pooling limits; the client polls a single host once a second,
// so these are deliberately small
const (
	defaultMaxIdleConnsPerHost = 2
	defaultIdleConnTimeout     = 60 * time.Second
)

// OutcomeKind classifies how a request ended.
type OutcomeKind int

const (
	// Success means a response was received and fully read. The status
	// code is below 400; redirects and other non-2xx codes the transport
	// does not treat as errors land here.
	Success OutcomeKind = iota

	// HTTPError means the server answered with an error status (4xx/5xx).
	// The body is read best-effort; an unreadable error body is not
	// itself fatal.
	HTTPError

	// TransportError means the connection failed: DNS, refused, timeout.
	// No response was received.
	TransportError

	// Unexpected covers everything else: request construction, body
	// encoding, or mid-read I/O failures.
	Unexpected
)

// String returns the kind's name for logging.
func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case HTTPError:
		return "http_error"
	case TransportError:
		return "transport_error"
	case Unexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Outcome holds the classified result of an HTTP request made by [Client].
//
// Outcome is always returned by value with any failure captured in Err
// rather than as a separate return; this keeps the result handoff to the
// dispatcher a single payload.
type Outcome struct {
	// Kind classifies the result.
	Kind OutcomeKind

	// Status is the HTTP status code. Zero if the request failed before
	// a response arrived.
	Status int

	// Body is the response body, limited to 1MB. For HTTPError outcomes
	// it may be nil if the error body could not be read.
	Body []byte

	// Err describes the failure for non-Success outcomes.
	Err error
}

// OK reports whether the outcome is a [Success].
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// Client is an HTTP client for talking to the timecode server.
//
// Every call is bounded by a fixed 2-second timeout enforced via context.
// Failures are classified into an [Outcome] rather than returned as bare
// errors, so the scheduler can map them onto display error strings without
// inspecting error chains.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new [Client].
//
// Request and outcome details are logged at debug level; enable a debug
// handler on logger to see them.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			// timeout applied per-request via context in do()
			Transport: &http.Transport{
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		logger: logger,
	}
}

// Get issues a GET request and classifies the result.
func (c *Client) Get(url string) Outcome {
	c.logger.Debug("http request", "method", http.MethodGet, "url", url)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return c.classified(url, Outcome{
			Kind: Unexpected,
			Err:  fmt.Errorf("failed to create request: %w", err),
		})
	}
	return c.classified(url, c.do(req))
}

// PostJSON issues a POST request with payload encoded as a UTF-8 JSON body
// and a Content-Type: application/json header, and classifies the result.
func (c *Client) PostJSON(url string, payload any) Outcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return c.classified(url, Outcome{
			Kind: Unexpected,
			Err:  fmt.Errorf("failed to encode request body: %w", err),
		})
	}

	c.logger.Debug("http request",
		"method", http.MethodPost, "url", url, "body", truncate(body))

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return c.classified(url, Outcome{
			Kind: Unexpected,
			Err:  fmt.Errorf("failed to create request: %w", err),
		})
	}
	req.Header.Set("Content-Type", "application/json")
	return c.classified(url, c.do(req))
}

// do performs the request under the fixed timeout and classifies the result.
func (c *Client) do(req *http.Request) Outcome {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return Outcome{
			Kind: TransportError,
			Err:  fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))

	if resp.StatusCode >= http.StatusBadRequest {
		// best-effort body: an unreadable error body is tolerated
		if readErr != nil {
			body = nil
		}
		return Outcome{
			Kind:   HTTPError,
			Status: resp.StatusCode,
			Body:   body,
			Err:    fmt.Errorf("server returned %s", resp.Status),
		}
	}

	if readErr != nil {
		return Outcome{
			Kind:   Unexpected,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("failed to read response body: %w", readErr),
		}
	}

	return Outcome{
		Kind:   Success,
		Status: resp.StatusCode,
		Body:   body,
	}
}

// classified logs the outcome and passes it through unchanged.
func (c *Client) classified(url string, o Outcome) Outcome {
	attrs := []any{"url", url, "outcome", o.Kind.String(), "status", o.Status}
	if o.Err != nil {
		attrs = append(attrs, "error", o.Err.Error())
	} else {
		attrs = append(attrs, "body", truncate(o.Body))
	}
	c.logger.Debug("http outcome", attrs...)
	return o
}

// Close closes idle connections in the client's pool.
//
// Safe to call multiple times; the client remains usable afterwards.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// truncate shortens a body for debug logging.
func truncate(b []byte) string {
	if len(b) <= debugBodyLimit {
		return string(b)
	}
	return string(b[:debugBodyLimit]) + "..."
}
