package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Amorphous121/jobboard/internal/model"
)

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_AppliesInOrder(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("H"))
	})
	tag := func(s string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(s))
				next.ServeHTTP(w, r)
			})
		}
	}

	rr := httptest.NewRecorder()
	Chain(handler, tag("1"), tag("2")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Body.String() != "12H" {
		t.Errorf("expected '12H', got %q", rr.Body.String())
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID_GeneratesUUID(t *testing.T) {
	t.Parallel()
	handler := &captureHandler{}

	rr := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rr.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected UUID request id, got %q", id)
	}
	if GetRequestID(handler.ctx) != id {
		t.Error("context request id should match header")
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	t.Parallel()
	handler := &captureHandler{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("expected 'abc-123', got %q", rr.Header().Get("X-Request-ID"))
	}
	if GetRequestID(handler.ctx) != "abc-123" {
		t.Error("expected incoming id in context")
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_Panic_ReturnsJSONError(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	Recovery(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if msg := decodeError(t, rr); msg != model.MsgInternal {
		t.Errorf("expected %q, got %q", model.MsgInternal, msg)
	}
}

func TestRecovery_NoPanic_PassesThrough(t *testing.T) {
	t.Parallel()
	handler := &captureHandler{}

	rr := httptest.NewRecorder()
	Recovery(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !handler.called || rr.Code != http.StatusOK {
		t.Errorf("expected pass through, got %d", rr.Code)
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantOrigin string
	}{
		{"allowed origin", []string{"https://jobs.example.com"}, "https://jobs.example.com", "https://jobs.example.com"},
		{"disallowed origin", []string{"https://jobs.example.com"}, "https://evil.example.com", ""},
		{"wildcard", []string{"*"}, "https://anything.example.com", "https://anything.example.com"},
		{"no origin", []string{"*"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed)(&captureHandler{}).ServeHTTP(rr, req)

			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected %q, got %q", tt.wantOrigin, got)
			}
		})
	}
}

func TestCORS_Preflight_Returns204WithPUT(t *testing.T) {
	t.Parallel()
	handler := &captureHandler{}

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs/1", nil)
	req.Header.Set("Origin", "https://jobs.example.com")
	rr := httptest.NewRecorder()
	CORS([]string{"*"})(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rr.Code)
	}
	if handler.called {
		t.Error("preflight should not reach the handler")
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), "PUT") {
		t.Error("expected PUT in allowed methods")
	}
}

// ============================================================================
// Compress Tests
// ============================================================================

func TestCompress_Gzip(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jobs":[]}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()
	Compress(handler).ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("expected gzip encoding")
	}
	gz, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	body, _ := io.ReadAll(gz)
	if string(body) != `{"jobs":[]}` {
		t.Errorf("unexpected body %q", body)
	}
}

func TestCompress_NoAcceptEncoding_Plain(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	})

	rr := httptest.NewRecorder()
	Compress(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Header().Get("Content-Encoding") != "" || rr.Body.String() != "plain" {
		t.Errorf("expected uncompressed body, got %q", rr.Body.String())
	}
}

// ============================================================================
// Logger Tests
// ============================================================================

func TestResponseWriter_CapturesStatusAndBytes(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}
	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)
	_, _ = rw.Write([]byte("hello"))

	if rw.statusCode != http.StatusCreated {
		t.Errorf("expected first status to win, got %d", rw.statusCode)
	}
	if rw.bytes != 5 {
		t.Errorf("expected 5 bytes, got %d", rw.bytes)
	}
}

func TestLogger_PassesThrough(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	Logger(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rr.Code)
	}
}
