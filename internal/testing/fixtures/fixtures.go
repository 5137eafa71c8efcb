package fixtures

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Amorphous121/jobboard/internal/model"
)

// DefaultPassword is the clear-text password of every fixture user
const DefaultPassword = "testpass123"

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Email returns an address no other fixture uses
func Email() string {
	return fmt.Sprintf("user_%s@test.local", randomID())
}

// ============================================================================
// User Fixtures
// ============================================================================

// User builds an unsaved user whose Password is the bcrypt hash of
// DefaultPassword
func User(opts ...func(*model.User)) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("fixtures: hash password: %v", err))
	}

	u := &model.User{
		Name:     "Test User",
		Email:    Email(),
		Password: string(hash),
		Role:     model.UserRoleUser,
	}
	for _, fn := range opts {
		fn(u)
	}
	return u
}

// RegisterRequest builds a valid registration payload
func RegisterRequest(opts ...func(*model.RegisterRequest)) model.RegisterRequest {
	req := model.RegisterRequest{
		Name:     "Test User",
		Email:    Email(),
		Password: DefaultPassword,
	}
	for _, fn := range opts {
		fn(&req)
	}
	return req
}

// ============================================================================
// Job Fixtures
// ============================================================================

// Job builds an unsaved, valid job owned by owner
func Job(owner string, opts ...func(*model.Job)) *model.Job {
	j := &model.Job{
		Title:       "Go Developer",
		Description: "Build and run backend services",
		Email:       "hr@acme.test",
		Address:     "1 Main St",
		Company:     "Acme",
		Industry:    []string{"Information Technology"},
		Positions:   1,
		Salary:      50000,
		PostingDate: time.Now().UTC().Truncate(time.Millisecond),
		User:        owner,
	}
	for _, fn := range opts {
		fn(j)
	}
	return j
}

// WithTitle sets the job title
func WithTitle(title string) func(*model.Job) {
	return func(j *model.Job) { j.Title = title }
}

// WithCompany sets the hiring company
func WithCompany(company string) func(*model.Job) {
	return func(j *model.Job) { j.Company = company }
}

// WithSalary sets the salary
func WithSalary(salary float64) func(*model.Job) {
	return func(j *model.Job) { j.Salary = salary }
}

// WithIndustry replaces the industry list
func WithIndustry(industry ...string) func(*model.Job) {
	return func(j *model.Job) { j.Industry = industry }
}

// PostedAt sets the posting date
func PostedAt(t time.Time) func(*model.Job) {
	return func(j *model.Job) { j.PostingDate = t }
}

// JobPayload is the JSON body a client sends to create j
func JobPayload(j *model.Job) map[string]interface{} {
	return map[string]interface{}{
		"title":       j.Title,
		"description": j.Description,
		"email":       j.Email,
		"address":     j.Address,
		"company":     j.Company,
		"industry":    j.Industry,
		"positions":   j.Positions,
		"salary":      j.Salary,
	}
}
