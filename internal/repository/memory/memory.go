// Package memory implements the user and job stores in process memory.
// It backs local runs and the HTTP acceptance tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
)

func newID() string {
	return uuid.NewString()
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", database.ErrInvalidID, id)
	}
	return nil
}

// Pinger stands in for a database connection in the health check
type Pinger struct{}

// Ping always succeeds
func (Pinger) Ping(context.Context) error { return nil }

// UserRepository is a map-backed user store with a unique email index
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
}

// NewUserRepository creates an empty user store
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user and fills in its ID
func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.UserRoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrValidation, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
	}

	user.ID = newID()
	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByID returns nil, nil when the user does not exist
func (r *UserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetByEmail returns nil, nil when no user has that email
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

// JobRepository is a map-backed job store
type JobRepository struct {
	mu    sync.RWMutex
	jobs  map[string]*model.Job
	order []string
}

// NewJobRepository creates an empty job store
func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]*model.Job)}
}

// Create stores a new job and fills in its ID
func (r *JobRepository) Create(_ context.Context, job *model.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrValidation, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = newID()
	r.jobs[job.ID] = cloneJob(job)
	r.order = append(r.order, job.ID)
	return nil
}

// List returns the jobs matching filter, newest posting first
func (r *JobRepository) List(_ context.Context, filter model.JobFilter) ([]*model.Job, error) {
	r.mu.RLock()
	matched := make([]*model.Job, 0, len(r.order))
	for _, id := range r.order {
		if j := r.jobs[id]; filter.Matches(j) {
			matched = append(matched, cloneJob(j))
		}
	}
	r.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, b *model.Job) int {
		return b.PostingDate.Compare(a.PostingDate)
	})

	if filter.Skip > 0 {
		if filter.Skip >= len(matched) {
			return []*model.Job{}, nil
		}
		matched = matched[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// GetByID returns nil, nil when the job does not exist and
// database.ErrInvalidID when id is not a UUID
func (r *JobRepository) GetByID(_ context.Context, id string) (*model.Job, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	return cloneJob(j), nil
}

// Update replaces the mutable fields of an existing job. The owner is kept.
func (r *JobRepository) Update(_ context.Context, job *model.Job) error {
	if err := checkID(job.ID); err != nil {
		return err
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrValidation, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.jobs[job.ID]
	if !ok {
		return database.ErrNotFound
	}
	updated := cloneJob(job)
	updated.User = existing.User
	updated.PostingDate = existing.PostingDate
	r.jobs[job.ID] = updated
	return nil
}

// Delete removes a job. It returns database.ErrNotFound if nothing was deleted.
func (r *JobRepository) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.jobs, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

func cloneJob(j *model.Job) *model.Job {
	cp := *j
	cp.Industry = slices.Clone(j.Industry)
	if cp.Industry == nil {
		cp.Industry = []string{}
	}
	cp.Files = slices.Clone(j.Files)
	if cp.Files == nil {
		cp.Files = []model.Attachment{}
	}
	return &cp
}
