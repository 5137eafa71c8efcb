package model

import (
	"strings"
	"time"
)

// Industries a job can be listed under
var Industries = []string{
	"Business",
	"Information Technology",
	"Banking",
	"Education/Training",
	"Telecommunication",
	"Others",
}

// Job represents a job posting owned by a single user
type Job struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title" validate:"required,max=100"`
	Description string       `json:"description" validate:"required,max=1000"`
	Email       string       `json:"email" validate:"required,email"`
	Address     string       `json:"address" validate:"required"`
	Company     string       `json:"company" validate:"required"`
	Industry    []string     `json:"industry" validate:"dive,industry"`
	Positions   int          `json:"positions" validate:"gte=1"`
	Salary      float64      `json:"salary" validate:"required,gt=0"`
	PostingDate time.Time    `json:"postingDate"`
	User        string       `json:"user" validate:"required"`
	Files       []Attachment `json:"files"`
}

// Validate checks the job against its schema rules
func (j *Job) Validate() error {
	return validate.Struct(j)
}

// IsOwnedBy reports whether userID owns the job
func (j *Job) IsOwnedBy(userID string) bool {
	return userID != "" && j.User == userID
}

// Attachment references a file uploaded to object storage for a job
type Attachment struct {
	Location    string    `json:"location"`
	Key         string    `json:"key"`
	Bucket      string    `json:"bucket"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// JobUpdate is a partial update; nil fields are left untouched.
// Owner and identifier are not part of the patch.
type JobUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Email       *string   `json:"email"`
	Address     *string   `json:"address"`
	Company     *string   `json:"company"`
	Industry    *[]string `json:"industry"`
	Positions   *int      `json:"positions"`
	Salary      *float64  `json:"salary"`
}

// Apply copies the set fields of u onto j
func (j *Job) Apply(u JobUpdate) {
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.Email != nil {
		j.Email = *u.Email
	}
	if u.Address != nil {
		j.Address = *u.Address
	}
	if u.Company != nil {
		j.Company = *u.Company
	}
	if u.Industry != nil {
		j.Industry = *u.Industry
	}
	if u.Positions != nil {
		j.Positions = *u.Positions
	}
	if u.Salary != nil {
		j.Salary = *u.Salary
	}
}

// JobFilter narrows a job listing. Zero values mean "no constraint";
// a zero Limit returns every match.
type JobFilter struct {
	Keyword   string
	Company   string
	Industry  string
	MinSalary *float64
	MaxSalary *float64
	Limit     int
	Skip      int
}

// Matches reports whether the job satisfies the filter criteria.
// Limit and Skip are applied by the caller.
func (f JobFilter) Matches(j *Job) bool {
	if f.Keyword != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Keyword)) {
		return false
	}
	if f.Company != "" && j.Company != f.Company {
		return false
	}
	if f.Industry != "" {
		found := false
		for _, ind := range j.Industry {
			if ind == f.Industry {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinSalary != nil && j.Salary < *f.MinSalary {
		return false
	}
	if f.MaxSalary != nil && j.Salary > *f.MaxSalary {
		return false
	}
	return true
}
