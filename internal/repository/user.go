package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
)

const userTable = "user"

// UserRepository handles user data access on SurrealDB
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user and fills in its ID and creation time
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.UserRoleUser
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrValidation, err)
	}

	query := `
		CREATE user CONTENT {
			name: $name,
			email: $email,
			password: $password,
			role: $role,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
		"role":     string(user.Role),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := parseUserResult(result)
	if err != nil {
		return err
	}
	user.ID = created.ID
	user.CreatedAt = created.CreatedAt
	return nil
}

// GetByID retrieves a user by ID. It returns nil, nil when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	rid, err := recordID(userTable, id)
	if err != nil {
		// a malformed id can never name a user
		return nil, nil
	}

	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": rid})
	return userOrNil(result, err)
}

// GetByEmail retrieves a user, including the password hash, by email.
// It returns nil, nil when no user has that email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"email": email})
	return userOrNil(result, err)
}

func userOrNil(result interface{}, err error) (*model.User, error) {
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func parseUserResult(result interface{}) (*model.User, error) {
	data, err := asRecord(result)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        recordKey(data["id"]),
		Name:      getString(data, "name"),
		Email:     getString(data, "email"),
		Password:  getString(data, "password"),
		Role:      model.UserRole(getString(data, "role")),
		CreatedAt: parseTime(data["created_on"]),
	}
	if user.Role == "" {
		user.Role = model.UserRoleUser
	}
	return user, nil
}
