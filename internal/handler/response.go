package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Amorphous121/jobboard/internal/middleware"
	"github.com/Amorphous121/jobboard/internal/model"
)

// MessageResponse carries a plain informational message
type MessageResponse struct {
	Message string `json:"message"`
}

// JobResponse wraps a single job
type JobResponse struct {
	Job *model.Job `json:"job"`
}

// JobsResponse wraps a job listing
type JobsResponse struct {
	Jobs []*model.Job `json:"jobs"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an {"error": ...} response
func WriteError(w http.ResponseWriter, err *model.APIError) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct.
// Unknown fields are ignored.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps err and logs anything that ends up as a 500
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := MapServiceError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}
	WriteError(w, apiErr)
}
