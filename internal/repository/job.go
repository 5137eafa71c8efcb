package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
)

const jobTable = "job"

// JobRepository handles job data access on SurrealDB
type JobRepository struct {
	db database.Database
}

// NewJobRepository creates a new job repository
func NewJobRepository(db database.Database) *JobRepository {
	return &JobRepository{db: db}
}

// Create stores a new job and fills in its ID
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrValidation, err)
	}

	query := `
		CREATE job CONTENT {
			title: $title,
			description: $description,
			email: $email,
			address: $address,
			company: $company,
			industry: $industry,
			positions: $positions,
			salary: $salary,
			posting_date: $posting_date,
			user: $user,
			files: $files,
			created_on: time::now()
		}
	`

	result, err := r.db.QueryOne(ctx, query, jobVars(job))
	if err != nil {
		return err
	}

	created, err := parseJobResult(result)
	if err != nil {
		return err
	}
	job.ID = created.ID
	return nil
}

// List returns the jobs matching filter, newest first
func (r *JobRepository) List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	query, vars := buildJobListQuery(filter)

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := extractQueryResults(results)
	jobs := make([]*model.Job, 0, len(records))
	for _, rec := range records {
		job, err := parseJobResult(rec)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// GetByID retrieves a job by ID. It returns nil, nil when the job does not
// exist and database.ErrInvalidID when id is malformed.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	rid, err := recordID(jobTable, id)
	if err != nil {
		return nil, err
	}

	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": rid})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	job, err := parseJobResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}

// Update replaces the mutable fields of an existing job. The owner is not written.
// It returns database.ErrNotFound if the job no longer exists.
func (r *JobRepository) Update(ctx context.Context, job *model.Job) error {
	rid, err := recordID(jobTable, job.ID)
	if err != nil {
		return err
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrValidation, err)
	}

	query := `
		UPDATE type::record($id) MERGE {
			title: $title,
			description: $description,
			email: $email,
			address: $address,
			company: $company,
			industry: $industry,
			positions: $positions,
			salary: $salary,
			files: $files,
			updated_on: time::now()
		} WHERE id != NONE RETURN AFTER
	`
	vars := jobVars(job)
	vars["id"] = rid
	delete(vars, "user")
	delete(vars, "posting_date")

	if _, err := r.db.QueryOne(ctx, query, vars); err != nil {
		return err
	}
	return nil
}

// Delete removes a job. It returns database.ErrNotFound if nothing was deleted.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	rid, err := recordID(jobTable, id)
	if err != nil {
		return err
	}

	_, err = r.db.QueryOne(ctx, `DELETE type::record($id) RETURN BEFORE`, map[string]interface{}{"id": rid})
	return err
}

func jobVars(job *model.Job) map[string]interface{} {
	industry := job.Industry
	if industry == nil {
		industry = []string{}
	}
	files := make([]map[string]interface{}, 0, len(job.Files))
	for _, f := range job.Files {
		files = append(files, map[string]interface{}{
			"location":     f.Location,
			"key":          f.Key,
			"bucket":       f.Bucket,
			"name":         f.Name,
			"content_type": f.ContentType,
			"size":         f.Size,
			"uploaded_at":  surrealTime(f.UploadedAt),
		})
	}

	return map[string]interface{}{
		"title":        job.Title,
		"description":  job.Description,
		"email":        job.Email,
		"address":      job.Address,
		"company":      job.Company,
		"industry":     industry,
		"positions":    job.Positions,
		"salary":       job.Salary,
		"posting_date": surrealTime(job.PostingDate),
		"user":         job.User,
		"files":        files,
	}
}

// buildJobListQuery turns a filter into a SurrealQL SELECT with bound variables
func buildJobListQuery(filter model.JobFilter) (string, map[string]interface{}) {
	var conds []string
	vars := map[string]interface{}{}

	if filter.Keyword != "" {
		conds = append(conds, "string::lowercase(title) CONTAINS $keyword")
		vars["keyword"] = strings.ToLower(filter.Keyword)
	}
	if filter.Company != "" {
		conds = append(conds, "company = $company")
		vars["company"] = filter.Company
	}
	if filter.Industry != "" {
		conds = append(conds, "industry CONTAINS $industry")
		vars["industry"] = filter.Industry
	}
	if filter.MinSalary != nil {
		conds = append(conds, "salary >= $min_salary")
		vars["min_salary"] = *filter.MinSalary
	}
	if filter.MaxSalary != nil {
		conds = append(conds, "salary <= $max_salary")
		vars["max_salary"] = *filter.MaxSalary
	}

	var b strings.Builder
	b.WriteString("SELECT * FROM job")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY posting_date DESC")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT $limit")
		vars["limit"] = filter.Limit
	}
	if filter.Skip > 0 {
		b.WriteString(" START $skip")
		vars["skip"] = filter.Skip
	}
	return b.String(), vars
}

func parseJobResult(result interface{}) (*model.Job, error) {
	data, err := asRecord(result)
	if err != nil {
		return nil, err
	}

	job := &model.Job{
		ID:          recordKey(data["id"]),
		Title:       getString(data, "title"),
		Description: getString(data, "description"),
		Email:       getString(data, "email"),
		Address:     getString(data, "address"),
		Company:     getString(data, "company"),
		Industry:    getStringSlice(data, "industry"),
		Positions:   getInt(data, "positions"),
		Salary:      getFloat(data, "salary"),
		PostingDate: parseTime(data["posting_date"]),
		User:        getString(data, "user"),
		Files:       []model.Attachment{},
	}
	if job.Industry == nil {
		job.Industry = []string{}
	}

	if files, ok := data["files"].([]interface{}); ok {
		for _, f := range files {
			m, ok := f.(map[string]interface{})
			if !ok {
				continue
			}
			job.Files = append(job.Files, model.Attachment{
				Location:    getString(m, "location"),
				Key:         getString(m, "key"),
				Bucket:      getString(m, "bucket"),
				Name:        getString(m, "name"),
				ContentType: getString(m, "content_type"),
				Size:        int64(getInt(m, "size")),
				UploadedAt:  parseTime(m["uploaded_at"]),
			})
		}
	}
	return job, nil
}
