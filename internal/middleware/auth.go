package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/internal/service"
)

// Authenticator resolves the user behind a bearer token
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// UserKey is the context key for the authenticated user
const UserKey contextKey = "user"

// Auth returns a middleware that requires a valid bearer token.
// It attaches the user ID and user to the request context.
func Auth(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, _ := strings.Cut(r.Header.Get("Authorization"), " ")
			if !strings.EqualFold(scheme, "Bearer") {
				model.NewForbiddenError(model.MsgMissingAuthHeader).WriteJSON(w)
				return
			}

			token = strings.TrimSpace(token)
			if token == "" {
				model.NewUnauthorizedError(model.MsgAuthFailed).WriteJSON(w)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
					model.NewUnauthorizedError(model.MsgAuthFailed).WriteJSON(w)
				default:
					slog.Error("authentication failed",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					model.NewInternalError(model.MsgAuthInternal).WriteJSON(w)
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserKey, user)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUser extracts the authenticated user from context
func GetUser(ctx context.Context) *model.User {
	if u, ok := ctx.Value(UserKey).(*model.User); ok {
		return u
	}
	return nil
}
