package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/internal/service"
)

// ============================================================================
// Mock Authenticator
// ============================================================================

type mockAuthenticator struct {
	authenticateFunc func(ctx context.Context, token string) (*model.User, error)
	lastToken        string
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	m.lastToken = token
	return m.authenticateFunc(ctx, token)
}

func successAuthenticator(userID string) *mockAuthenticator {
	return &mockAuthenticator{
		authenticateFunc: func(ctx context.Context, token string) (*model.User, error) {
			return &model.User{ID: userID, Email: "jane@example.com"}, nil
		},
	}
}

func errorAuthenticator(err error) *mockAuthenticator {
	return &mockAuthenticator{
		authenticateFunc: func(ctx context.Context, token string) (*model.User, error) {
			return nil, err
		},
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

// captureHandler captures the request context for inspection
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

// ============================================================================
// Auth Tests
// ============================================================================

func TestAuth_ValidToken_AttachesUser(t *testing.T) {
	t.Parallel()
	auth := successAuthenticator("user-1")
	handler := &captureHandler{}

	rr := httptest.NewRecorder()
	Auth(auth)(handler).ServeHTTP(rr, newTestRequest("Bearer good-token"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !handler.called {
		t.Fatal("handler should have been called")
	}
	if auth.lastToken != "good-token" {
		t.Errorf("expected token 'good-token', got %q", auth.lastToken)
	}
	if got := GetUserID(handler.ctx); got != "user-1" {
		t.Errorf("expected user ID 'user-1', got %q", got)
	}
	if u := GetUser(handler.ctx); u == nil || u.Email != "jane@example.com" {
		t.Errorf("expected user in context, got %+v", u)
	}
}

func TestAuth_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		authErr    error
		wantStatus int
		wantMsg    string
	}{
		{"no header", "", nil, http.StatusForbidden, model.MsgMissingAuthHeader},
		{"basic scheme", "Basic dXNlcjpwYXNz", nil, http.StatusForbidden, model.MsgMissingAuthHeader},
		{"token without scheme", "abc.def.ghi", nil, http.StatusForbidden, model.MsgMissingAuthHeader},
		{"bearer without token", "Bearer", nil, http.StatusUnauthorized, model.MsgAuthFailed},
		{"bearer with blank token", "Bearer   ", nil, http.StatusUnauthorized, model.MsgAuthFailed},
		{"invalid token", "Bearer bad", fmt.Errorf("%w: expired", service.ErrInvalidToken), http.StatusUnauthorized, model.MsgAuthFailed},
		{"user gone", "Bearer ok", service.ErrUserNotFound, http.StatusUnauthorized, model.MsgAuthFailed},
		{"no verification key", "Bearer ok", service.ErrTokenUnverifiable, http.StatusInternalServerError, model.MsgAuthInternal},
		{"store down", "Bearer ok", fmt.Errorf("resolve: %w", database.ErrConnection), http.StatusInternalServerError, model.MsgAuthInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			auth := errorAuthenticator(tt.authErr)
			if tt.authErr == nil {
				auth = &mockAuthenticator{authenticateFunc: func(context.Context, string) (*model.User, error) {
					return nil, errors.New("authenticator should not be called")
				}}
			}
			handler := &captureHandler{}

			rr := httptest.NewRecorder()
			Auth(auth)(handler).ServeHTTP(rr, newTestRequest(tt.header))

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if handler.called {
				t.Error("handler should not have been called")
			}
			if msg := decodeError(t, rr); msg != tt.wantMsg {
				t.Errorf("expected error %q, got %q", tt.wantMsg, msg)
			}
			if tt.authErr == nil && auth.lastToken != "" {
				t.Error("authenticator should not be called")
			}
		})
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	handler := &captureHandler{}

	rr := httptest.NewRecorder()
	Auth(successAuthenticator("user-1"))(handler).ServeHTTP(rr, newTestRequest("bearer tok"))

	if !handler.called {
		t.Errorf("expected lowercase bearer to be accepted, got %d", rr.Code)
	}
}

func TestGetUser_Missing_ReturnsZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if GetUserID(ctx) != "" {
		t.Error("expected empty user ID")
	}
	if GetUser(ctx) != nil {
		t.Error("expected nil user")
	}
}
