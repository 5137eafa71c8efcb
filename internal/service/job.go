package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/internal/storage"
)

// JobRepository defines the interface for job storage.
// GetByID returns nil, nil when the job does not exist and
// database.ErrInvalidID when the id is malformed.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id string) error
}

// JobService handles job postings and their attachments
type JobService struct {
	jobRepo        JobRepository
	uploader       storage.Uploader
	keyPrefix      string
	maxUploadBytes int64
}

// JobServiceConfig holds configuration for the job service
type JobServiceConfig struct {
	JobRepo        JobRepository
	Uploader       storage.Uploader // nil disables uploads
	KeyPrefix      string
	MaxUploadBytes int64
}

// NewJobService creates a new job service
func NewJobService(cfg JobServiceConfig) *JobService {
	return &JobService{
		jobRepo:        cfg.JobRepo,
		uploader:       cfg.Uploader,
		keyPrefix:      cfg.KeyPrefix,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// MaxUploadBytes returns the largest accepted attachment
func (s *JobService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// List returns jobs matching filter, newest first. Never nil.
func (s *JobService) List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	jobs, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*model.Job{}
	}
	return jobs, nil
}

// Create stores a job owned by userID. Client supplied id, owner and
// attachments are ignored.
func (s *JobService) Create(ctx context.Context, userID string, job *model.Job) (*model.Job, error) {
	job.ID = ""
	job.User = userID
	job.Files = []model.Attachment{}
	if job.Industry == nil {
		job.Industry = []string{}
	}
	if job.PostingDate.IsZero() {
		job.PostingDate = time.Now().UTC()
	}
	if job.Positions == 0 {
		job.Positions = 1
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, mapJobStoreError(err)
	}
	return job, nil
}

// Get returns a job by id
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapJobStoreError(err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// Update applies patch to a job owned by userID and returns the result.
// Concurrent updates are last-write-wins.
func (s *JobService) Update(ctx context.Context, id, userID string, patch model.JobUpdate) (*model.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(userID) {
		return nil, ErrUpdateForbidden
	}

	job.Apply(patch)
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, mapJobStoreError(err)
	}
	return job, nil
}

// Delete removes a job owned by userID and returns its last state
func (s *JobService) Delete(ctx context.Context, id, userID string) (*model.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(userID) {
		return nil, ErrDeleteForbidden
	}

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return nil, mapJobStoreError(err)
	}
	return job, nil
}

// UploadRequest is a file to attach to a job
type UploadRequest struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
	// TooLarge marks a body cut off by the transport limit before the file was read
	TooLarge bool
}

// Upload stores a file in object storage and attaches it to a job owned by userID
func (s *JobService) Upload(ctx context.Context, id, userID string, req UploadRequest) (*model.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(userID) {
		return nil, ErrUpdateForbidden
	}
	if req.TooLarge {
		return nil, ErrFileTooLarge
	}
	if req.Body == nil || req.Name == "" {
		return nil, ErrMissingFile
	}
	if s.maxUploadBytes > 0 && req.Size > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, ErrStorageDisabled)
	}

	obj, err := s.uploader.Upload(ctx, storage.File{
		Key:         storage.ObjectKey(s.keyPrefix, job.ID, req.Name),
		Body:        req.Body,
		Size:        req.Size,
		ContentType: req.ContentType,
	})
	if err != nil {
		slog.Error("object upload failed", "error", err, "job_id", job.ID)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	job.Files = append(job.Files, model.Attachment{
		Location:    obj.Location,
		Key:         obj.Key,
		Bucket:      obj.Bucket,
		Name:        req.Name,
		ContentType: req.ContentType,
		Size:        req.Size,
		UploadedAt:  time.Now().UTC(),
	})

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, mapJobStoreError(err)
	}
	return job, nil
}

func mapJobStoreError(err error) error {
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return ErrInvalidJobID
	case errors.Is(err, database.ErrNotFound):
		return ErrJobNotFound
	case errors.Is(err, database.ErrValidation):
		return fmt.Errorf("%w: %v", ErrJobValidation, err)
	}
	return err
}
