package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/middleware"
	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/internal/repository/memory"
	"github.com/Amorphous121/jobboard/internal/service"
	"github.com/Amorphous121/jobboard/internal/storage"
	"github.com/Amorphous121/jobboard/pkg/jwt"
)

// End-to-end tests over the full router, backed by the in-memory store.

type fakeUploader struct {
	err   error
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, file storage.File) (*storage.Object, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	_, _ = io.Copy(io.Discard, file.Body)
	return &storage.Object{
		Location: "https://uploads.s3.amazonaws.com/" + file.Key,
		Key:      file.Key,
		Bucket:   "uploads",
	}, nil
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

type testServer struct {
	handler  http.Handler
	uploader *fakeUploader
}

func newTestServer(t *testing.T, pinger database.Pinger) *testServer {
	t.Helper()

	tokens := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwt.NewTestService([]byte("acceptance-secret"), "jobboard", time.Hour),
	})
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     memory.NewUserRepository(),
		TokenService: tokens,
	})
	uploader := &fakeUploader{}
	jobService := service.NewJobService(service.JobServiceConfig{
		JobRepo:        memory.NewJobRepository(),
		Uploader:       uploader,
		KeyPrefix:      "jobs",
		MaxUploadBytes: 64,
	})

	mux := Routes(RoutesConfig{
		Auth:        NewAuthHandler(authService),
		Jobs:        NewJobHandler(jobService),
		Health:      NewHealthHandler(pinger),
		RequireAuth: middleware.Auth(authService),
	})

	return &testServer{
		handler:  middleware.Chain(mux, middleware.RequestID, middleware.Recovery),
		uploader: uploader,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/v1/register", "", map[string]string{
		"name": "Test User", "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp model.TokenResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (s *testServer) createJob(t *testing.T, token string, title string) *model.Job {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/v1/jobs", token, map[string]interface{}{
		"title":       title,
		"description": "Build and run services",
		"email":       "hr@acme.test",
		"address":     "1 Main St",
		"company":     "Acme",
		"industry":    []string{"Information Technology"},
		"positions":   2,
		"salary":      85000,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp JobResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Job)
	return resp.Job
}

func TestAcceptance_RegisterLoginFlow(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})

	s.register(t, "jane@example.com")

	rr := s.do(t, http.MethodPost, "/api/v1/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Duplicate email", errorMessage(t, rr))

	rr = s.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email": "jane@example.com", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid Email or Password", errorMessage(t, rr))

	rr = s.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid Email or Password", errorMessage(t, rr))

	rr = s.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email": "jane@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp model.TokenResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)

	rr = s.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"email": "jane@example.com"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please enter email & Password", errorMessage(t, rr))
}

func TestAcceptance_RegisterValidation(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})

	tests := []struct {
		body    map[string]string
		wantMsg string
	}{
		{map[string]string{"email": "a@example.com", "password": "password123"}, "Please enter all values"},
		{map[string]string{"name": "A", "email": "nope", "password": "password123"}, "Please enter valid email address"},
		{map[string]string{"name": "A", "email": "a@example.com", "password": "short"}, "Your password must be at least 8 characters long"},
		{map[string]string{"name": "A", "email": "a@example.com", "password": "ééé€"}, "Your password must be at least 8 characters long"},
		{map[string]string{"name": "A", "email": "a@example.com", "password": strings.Repeat("p", 80)}, "Your password must be at most 72 bytes long"},
	}
	for _, tt := range tests {
		rr := s.do(t, http.MethodPost, "/api/v1/register", "", tt.body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, tt.wantMsg, errorMessage(t, rr))
	}
}

func TestAcceptance_RegisterPasswordBoundaries(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})

	for i, password := range []string{"éééééééé", strings.Repeat("p", 72)} {
		rr := s.do(t, http.MethodPost, "/api/v1/register", "", map[string]string{
			"name": "A", "email": fmt.Sprintf("user%d@example.com", i), "password": password,
		})
		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
}

func TestAcceptance_PublicEndpoints(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})

	rr := s.do(t, http.MethodGet, "/api/v1/test", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Hello"}`, rr.Body.String())

	rr = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	for _, path := range []string{"/nope", "/api/v1/unknown"} {
		rr = s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Equal(t, "Route not found", errorMessage(t, rr))
	}

	rr = s.do(t, http.MethodPatch, "/api/v1/jobs", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Route not found", errorMessage(t, rr))
}

func TestAcceptance_HealthUnavailable(t *testing.T) {
	s := newTestServer(t, downPinger{})

	rr := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "Service unavailable", errorMessage(t, rr))
}

func TestAcceptance_AuthMiddleware(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})

	rr := s.do(t, http.MethodPost, "/api/v1/jobs", "", map[string]string{})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Missing Authorization header with Bearer token", errorMessage(t, rr))

	rr = s.do(t, http.MethodPost, "/api/v1/jobs", "not-a-jwt", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Authentication Failed", errorMessage(t, rr))

	// Signed by someone else
	other := jwt.NewTestService([]byte("other-secret"), "jobboard", time.Hour)
	forged, err := other.Sign(jwt.Claims{UserID: "whoever"})
	require.NoError(t, err)
	rr = s.do(t, http.MethodPost, "/api/v1/jobs", forged, map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Valid signature, user does not exist
	ghost, err := jwt.NewTestService([]byte("acceptance-secret"), "jobboard", time.Hour).Sign(jwt.Claims{UserID: "ghost"})
	require.NoError(t, err)
	rr = s.do(t, http.MethodPost, "/api/v1/jobs", ghost, map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Authentication Failed", errorMessage(t, rr))
}

func TestAcceptance_JobLifecycle(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})
	owner := s.register(t, "owner@example.com")
	intruder := s.register(t, "intruder@example.com")

	job := s.createJob(t, owner, "Go Developer")
	assert.NotEmpty(t, job.ID)
	assert.NotEmpty(t, job.User)
	assert.Equal(t, 2, job.Positions)

	// Public read
	rr := s.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/jobs/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Job not found", errorMessage(t, rr))

	rr = s.do(t, http.MethodGet, "/api/v1/jobs/123", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please enter correct id", errorMessage(t, rr))

	// Ownership
	rr = s.do(t, http.MethodPut, "/api/v1/jobs/"+job.ID, intruder, map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "You are not allowed to update this job", errorMessage(t, rr))

	rr = s.do(t, http.MethodDelete, "/api/v1/jobs/"+job.ID, intruder, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "You are not allowed to delete this job", errorMessage(t, rr))

	// Owner update
	rr = s.do(t, http.MethodPut, "/api/v1/jobs/"+job.ID, owner, map[string]string{"title": "Senior Go Developer"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated JobResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, "Senior Go Developer", updated.Job.Title)
	assert.Equal(t, job.User, updated.Job.User)

	rr = s.do(t, http.MethodPut, "/api/v1/jobs/"+job.ID, owner, map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please enter all values", errorMessage(t, rr))

	// Owner delete returns the prior snapshot
	rr = s.do(t, http.MethodDelete, "/api/v1/jobs/"+job.ID, owner, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var deleted JobResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&deleted))
	assert.Equal(t, job.ID, deleted.Job.ID)

	rr = s.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAcceptance_CreateJobValidation(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})
	token := s.register(t, "owner@example.com")

	rr := s.do(t, http.MethodPost, "/api/v1/jobs", token, map[string]string{"title": "Only a title"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please enter all values", errorMessage(t, rr))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body", errorMessage(t, rr))
}

func TestAcceptance_CreateJobEmptyCollections(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})
	token := s.register(t, "owner@example.com")

	rr := s.do(t, http.MethodPost, "/api/v1/jobs", token, map[string]interface{}{
		"title":       "Go Developer",
		"description": "Build and run services",
		"email":       "hr@acme.test",
		"address":     "1 Main St",
		"company":     "Acme",
		"salary":      85000,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var raw struct {
		Job map[string]json.RawMessage `json:"job"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	assert.JSONEq(t, `[]`, string(raw.Job["industry"]))
	assert.JSONEq(t, `[]`, string(raw.Job["files"]))
}

func TestAcceptance_ListJobs(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})

	rr := s.do(t, http.MethodGet, "/api/v1/jobs", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"jobs":[]}`, rr.Body.String())

	token := s.register(t, "owner@example.com")
	s.createJob(t, token, "Go Developer")
	s.createJob(t, token, "Accountant")
	s.createJob(t, token, "Rust Developer")

	rr = s.do(t, http.MethodGet, "/api/v1/jobs?keyword=developer", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp JobsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Jobs, 2)

	rr = s.do(t, http.MethodGet, "/api/v1/jobs?limit=1&page=2", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Jobs, 1)

	rr = s.do(t, http.MethodGet, "/api/v1/jobs?minSalary=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please enter correct query values", errorMessage(t, rr))
}

func (s *testServer) upload(t *testing.T, jobID, token, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "cv.pdf")
	require.NoError(t, err)
	_, _ = io.WriteString(part, content)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+jobID+"/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func TestAcceptance_OversizedUploadChecksJobFirst(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})
	owner := s.register(t, "owner@example.com")
	intruder := s.register(t, "intruder@example.com")
	job := s.createJob(t, owner, "Go Developer")
	big := strings.Repeat("x", 2<<20)

	rr := s.upload(t, job.ID, intruder, big)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "You are not allowed to update this job", errorMessage(t, rr))

	rr = s.upload(t, "00000000-0000-0000-0000-000000000000", owner, big)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Zero(t, s.uploader.calls)
}

func TestAcceptance_Upload(t *testing.T) {
	s := newTestServer(t, memory.Pinger{})
	owner := s.register(t, "owner@example.com")
	intruder := s.register(t, "intruder@example.com")
	job := s.createJob(t, owner, "Go Developer")

	rr := s.upload(t, job.ID, owner, "%PDF-1.4 small")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp JobResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Job.Files, 1)
	assert.Equal(t, "cv.pdf", resp.Job.Files[0].Name)
	assert.Equal(t, "uploads", resp.Job.Files[0].Bucket)
	assert.Contains(t, resp.Job.Files[0].Location, "/jobs/"+job.ID+"/")

	rr = s.upload(t, job.ID, intruder, "x")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "You are not allowed to update this job", errorMessage(t, rr))

	rr = s.upload(t, job.ID, owner, string(make([]byte, 65)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please upload file less than 64 bytes", errorMessage(t, rr))

	rr = s.do(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/upload", owner, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please upload a file", errorMessage(t, rr))

	rr = s.upload(t, job.ID, owner, strings.Repeat("x", 2<<20))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please upload file less than 64 bytes", errorMessage(t, rr))

	s.uploader.err = errors.New("bucket unreachable")
	rr = s.upload(t, job.ID, owner, "x")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "File upload failed", errorMessage(t, rr))
}
