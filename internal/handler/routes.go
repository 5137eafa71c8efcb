package handler

import (
	"net/http"

	"github.com/Amorphous121/jobboard/internal/middleware"
	"github.com/Amorphous121/jobboard/internal/model"
)

// RoutesConfig holds everything the router wires together
type RoutesConfig struct {
	Auth   *AuthHandler
	Jobs   *JobHandler
	Health *HealthHandler
	// RequireAuth guards job mutations
	RequireAuth middleware.Middleware
}

// Routes builds the API mux. Requests that match no route, including a
// known path with an unsupported method, get 404 {"error":"Route not found"}.
func Routes(cfg RoutesConfig) *http.ServeMux {
	mux := http.NewServeMux()
	protected := func(h http.HandlerFunc) http.Handler {
		return cfg.RequireAuth(h)
	}

	mux.HandleFunc("GET /health", cfg.Health.Check)

	// Auth endpoints
	mux.HandleFunc("GET /api/v1/test", cfg.Auth.Test)
	mux.HandleFunc("POST /api/v1/register", cfg.Auth.Register)
	mux.HandleFunc("POST /api/v1/login", cfg.Auth.Login)

	// Job endpoints
	mux.HandleFunc("GET /api/v1/jobs", cfg.Jobs.List)
	mux.Handle("POST /api/v1/jobs", protected(cfg.Jobs.Create))
	mux.HandleFunc("GET /api/v1/jobs/{id}", cfg.Jobs.Get)
	mux.Handle("PUT /api/v1/jobs/{id}", protected(cfg.Jobs.Update))
	mux.Handle("DELETE /api/v1/jobs/{id}", protected(cfg.Jobs.Delete))
	mux.Handle("POST /api/v1/jobs/{id}/upload", protected(cfg.Jobs.Upload))

	mux.HandleFunc("/", NotFound)

	return mux
}

// NotFound answers any unmatched route
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, model.NewNotFoundError(model.MsgRouteNotFound))
}
