package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/internal/testing/fixtures"
)

// MalformedID is rejected by every store adapter
const MalformedID = "bad id!"

// UserStore is the credential store contract
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// JobStore is the job store contract
type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id string) error
}

// JobStoreOpts describes adapter-specific ids
type JobStoreOpts struct {
	// Owner and OtherOwner must be ids the adapter accepts as job owners
	Owner      string
	OtherOwner string
	// MissingID is well formed but names no job
	MissingID string
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// User Store Contract
// ============================================================================

// RunUserStoreTests checks the behavior every credential store must share.
// The store must start empty of fixture emails.
func RunUserStoreTests(t *testing.T, store UserStore) {
	t.Run("create and lookup", func(t *testing.T) {
		u := fixtures.User()
		require.NoError(t, store.Create(ctx(t), u))
		require.NotEmpty(t, u.ID)

		byEmail, err := store.GetByEmail(ctx(t), u.Email)
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, u.Password, byEmail.Password, "hash must be returned for login")

		byID, err := store.GetByID(ctx(t), u.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, u.Email, byID.Email)
		assert.Equal(t, model.UserRoleUser, byID.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		u := fixtures.User()
		require.NoError(t, store.Create(ctx(t), u))

		dup := fixtures.User(func(d *model.User) { d.Email = u.Email })
		assert.ErrorIs(t, store.Create(ctx(t), dup), database.ErrDuplicate)
	})

	t.Run("invalid user", func(t *testing.T) {
		u := fixtures.User(func(u *model.User) { u.Name = "" })
		assert.ErrorIs(t, store.Create(ctx(t), u), database.ErrValidation)
	})

	t.Run("unknown email", func(t *testing.T) {
		u, err := store.GetByEmail(ctx(t), fixtures.Email())
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

// ============================================================================
// Job Store Contract
// ============================================================================

// RunJobStoreTests checks the behavior every job store must share.
// The store must start with no jobs.
func RunJobStoreTests(t *testing.T, store JobStore, opts JobStoreOpts) {
	t.Run("crud", func(t *testing.T) {
		job := fixtures.Job(opts.Owner)
		require.NoError(t, store.Create(ctx(t), job))
		require.NotEmpty(t, job.ID)

		got, err := store.GetByID(ctx(t), job.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, job.Title, got.Title)
		assert.Equal(t, opts.Owner, got.User)
		assert.NotNil(t, got.Files)

		got.Title = "Staff Go Developer"
		got.User = opts.OtherOwner
		got.Files = append(got.Files, model.Attachment{Key: "jobs/cv.pdf", Bucket: "uploads", Name: "cv.pdf", Size: 10})
		require.NoError(t, store.Update(ctx(t), got))

		updated, err := store.GetByID(ctx(t), job.ID)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Staff Go Developer", updated.Title)
		assert.Equal(t, opts.Owner, updated.User, "owner is never reassigned")
		require.Len(t, updated.Files, 1)
		assert.Equal(t, "cv.pdf", updated.Files[0].Name)

		require.NoError(t, store.Delete(ctx(t), job.ID))
		assert.ErrorIs(t, store.Update(ctx(t), updated), database.ErrNotFound)
		gone, err := store.GetByID(ctx(t), job.ID)
		assert.NoError(t, err)
		assert.Nil(t, gone, "update after delete must not recreate the job")
	})

	t.Run("missing and malformed ids", func(t *testing.T) {
		j, err := store.GetByID(ctx(t), opts.MissingID)
		assert.NoError(t, err)
		assert.Nil(t, j)

		assert.ErrorIs(t, store.Delete(ctx(t), opts.MissingID), database.ErrNotFound)

		missing := fixtures.Job(opts.Owner)
		missing.ID = opts.MissingID
		assert.ErrorIs(t, store.Update(ctx(t), missing), database.ErrNotFound)

		_, err = store.GetByID(ctx(t), MalformedID)
		assert.ErrorIs(t, err, database.ErrInvalidID)
		assert.ErrorIs(t, store.Delete(ctx(t), MalformedID), database.ErrInvalidID)
	})

	t.Run("validation", func(t *testing.T) {
		job := fixtures.Job(opts.Owner, fixtures.WithTitle(""))
		assert.ErrorIs(t, store.Create(ctx(t), job), database.ErrValidation)

		job = fixtures.Job(opts.Owner, fixtures.WithIndustry("Astrology"))
		assert.ErrorIs(t, store.Create(ctx(t), job), database.ErrValidation)
	})

	t.Run("list filters and pages", func(t *testing.T) {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		var ids []string
		for i := 0; i < 4; i++ {
			j := fixtures.Job(opts.Owner,
				fixtures.WithTitle(fmt.Sprintf("Listing %d", i)),
				fixtures.WithSalary(float64(1000*(i+1))),
				fixtures.PostedAt(base.Add(time.Duration(i)*time.Hour)),
			)
			require.NoError(t, store.Create(ctx(t), j))
			ids = append(ids, j.ID)
		}
		t.Cleanup(func() {
			for _, id := range ids {
				_ = store.Delete(context.Background(), id)
			}
		})

		all, err := store.List(ctx(t), model.JobFilter{Keyword: "listing"})
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "Listing 3", all[0].Title, "newest first")

		page, err := store.List(ctx(t), model.JobFilter{Keyword: "listing", Limit: 2, Skip: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "Listing 2", page[0].Title)

		minSalary, maxSalary := 2000.0, 3000.0
		ranged, err := store.List(ctx(t), model.JobFilter{MinSalary: &minSalary, MaxSalary: &maxSalary})
		require.NoError(t, err)
		assert.Len(t, ranged, 2)

		none, err := store.List(ctx(t), model.JobFilter{Company: "Nobody Inc"})
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})
}
