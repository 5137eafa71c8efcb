package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Amorphous121/jobboard/internal/middleware"
	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/internal/service"
)

// multipartOverhead leaves room for boundaries and part headers
const multipartOverhead = 1 << 20

// JobService is the subset of service.JobService used by JobHandler
type JobService interface {
	List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error)
	Create(ctx context.Context, userID string, job *model.Job) (*model.Job, error)
	Get(ctx context.Context, id string) (*model.Job, error)
	Update(ctx context.Context, id, userID string, patch model.JobUpdate) (*model.Job, error)
	Delete(ctx context.Context, id, userID string) (*model.Job, error)
	Upload(ctx context.Context, id, userID string, req service.UploadRequest) (*model.Job, error)
	MaxUploadBytes() int64
}

// JobHandler handles job endpoints
type JobHandler struct {
	jobService JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseJobFilter(r.URL.Query())
	if err != nil {
		WriteError(w, model.NewBadRequestError(model.MsgInvalidQuery))
		return
	}

	jobs, err := h.jobService.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, JobsResponse{Jobs: jobs})
}

// Create handles POST /api/v1/jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var job model.Job
	if err := DecodeJSON(r, &job); err != nil {
		WriteError(w, model.NewBadRequestError(model.MsgInvalidBody))
		return
	}

	created, err := h.jobService.Create(r.Context(), middleware.GetUserID(r.Context()), &job)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, JobResponse{Job: created})
}

// Get handles GET /api/v1/jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, JobResponse{Job: job})
}

// Update handles PUT /api/v1/jobs/{id}
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.JobUpdate
	if err := DecodeJSON(r, &patch); err != nil {
		WriteError(w, model.NewBadRequestError(model.MsgInvalidBody))
		return
	}

	job, err := h.jobService.Update(r.Context(), r.PathValue("id"), middleware.GetUserID(r.Context()), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, JobResponse{Job: job})
}

// Delete handles DELETE /api/v1/jobs/{id}
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobService.Delete(r.Context(), r.PathValue("id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, JobResponse{Job: job})
}

// Upload handles POST /api/v1/jobs/{id}/upload with a multipart "file" field
func (h *JobHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.jobService.MaxUploadBytes()
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	var req service.UploadRequest
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		// Oversized, not multipart or empty: reported after the ownership checks
		req.TooLarge = errors.As(err, &tooLarge)
	} else {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		file, header, err := r.FormFile("file")
		if err == nil {
			defer func() { _ = file.Close() }()
			req = uploadRequest(file, header)
		}
	}

	job, err := h.jobService.Upload(r.Context(), r.PathValue("id"), middleware.GetUserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, service.ErrFileTooLarge) {
			WriteError(w, model.NewPayloadTooLargeError(limit))
			return
		}
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, JobResponse{Job: job})
}

func uploadRequest(file multipart.File, header *multipart.FileHeader) service.UploadRequest {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return service.UploadRequest{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}
}

// parseJobFilter reads listing filters and pagination from the query string.
// page, when given with limit, overrides skip.
func parseJobFilter(q url.Values) (model.JobFilter, error) {
	filter := model.JobFilter{
		Keyword:  q.Get("keyword"),
		Company:  q.Get("company"),
		Industry: q.Get("industry"),
	}

	var err error
	if filter.Limit, err = nonNegativeInt(q, "limit"); err != nil {
		return filter, err
	}
	if filter.Skip, err = nonNegativeInt(q, "skip"); err != nil {
		return filter, err
	}
	page, err := nonNegativeInt(q, "page")
	if err != nil {
		return filter, err
	}
	if page > 0 && filter.Limit > 0 {
		filter.Skip = (page - 1) * filter.Limit
	}

	if filter.MinSalary, err = optionalFloat(q, "minSalary"); err != nil {
		return filter, err
	}
	if filter.MaxSalary, err = optionalFloat(q, "maxSalary"); err != nil {
		return filter, err
	}
	return filter, nil
}

func nonNegativeInt(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New(key + " must not be negative")
	}
	return n, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
