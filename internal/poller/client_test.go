package poller

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestClient_GetSuccess verifies that a 200 response is classified as
// Success with the full body captured.
func TestClient_GetSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte(`{"display_text":"12:00:00"}`))
	}))
	defer srv.Close()

	out := NewClient(testLogger()).Get(srv.URL)

	if !out.OK() {
		t.Fatalf("expected Success, got %s (err: %v)", out.Kind, out.Err)
	}
	if out.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", out.Status)
	}
	if string(out.Body) != `{"display_text":"12:00:00"}` {
		t.Errorf("unexpected body: %s", out.Body)
	}
}

// TestClient_GetHTTPError verifies that a 5xx response is classified as
// HTTPError with the error body read best-effort.
func TestClient_GetHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := NewClient(testLogger()).Get(srv.URL)

	if out.Kind != HTTPError {
		t.Fatalf("expected HTTPError, got %s", out.Kind)
	}
	if out.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", out.Status)
	}
	if !strings.Contains(string(out.Body), "boom") {
		t.Errorf("error body not captured: %q", out.Body)
	}
	if out.Err == nil {
		t.Error("HTTPError outcome must carry an error")
	}
}

// TestClient_GetTransportError verifies that an unreachable server is
// classified as TransportError with no status code.
func TestClient_GetTransportError(t *testing.T) {
	// grab a port that is guaranteed closed
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	out := NewClient(testLogger()).Get(url)

	if out.Kind != TransportError {
		t.Fatalf("expected TransportError, got %s", out.Kind)
	}
	if out.Status != 0 {
		t.Errorf("expected zero status, got %d", out.Status)
	}
	if out.Err == nil {
		t.Error("TransportError outcome must carry an error")
	}
}

// TestClient_GetTimeout verifies that a server slower than the fixed
// timeout produces a TransportError rather than blocking the caller.
func TestClient_GetTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timeout test in short mode")
	}

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	out := NewClient(testLogger()).Get(srv.URL)
	elapsed := time.Since(start)

	if out.Kind != TransportError {
		t.Fatalf("expected TransportError on timeout, got %s", out.Kind)
	}
	// 2s timeout plus scheduling slack
	if elapsed > 4*time.Second {
		t.Errorf("call blocked for %s, timeout not enforced", elapsed)
	}
}

// TestClient_PostJSON verifies the request body encoding and header.
func TestClient_PostJSON(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer srv.Close()

	out := NewClient(testLogger()).PostJSON(srv.URL, map[string]any{"fps": 30})

	if !out.OK() {
		t.Fatalf("expected Success, got %s (err: %v)", out.Kind, out.Err)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json content type, got %q", gotContentType)
	}
	if gotBody != `{"fps":30}` {
		t.Errorf("unexpected request body: %s", gotBody)
	}
}

// TestClient_PostJSONEncodeFailure verifies that an unencodable payload is
// classified as Unexpected without any request being issued.
func TestClient_PostJSONEncodeFailure(t *testing.T) {
	out := NewClient(testLogger()).PostJSON("http://127.0.0.1:0/config", make(chan int))

	if out.Kind != Unexpected {
		t.Fatalf("expected Unexpected, got %s", out.Kind)
	}
	if out.Err == nil {
		t.Error("encode failure must carry an error")
	}
}

// TestOutcomeKind_String covers the log labels.
func TestOutcomeKind_String(t *testing.T) {
	cases := map[OutcomeKind]string{
		Success:        "success",
		HTTPError:      "http_error",
		TransportError: "transport_error",
		Unexpected:     "unexpected",
		OutcomeKind(9): "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("OutcomeKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
