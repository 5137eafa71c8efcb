package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
)

// JobRepository stores jobs in the jobs collection
type JobRepository struct {
	coll *mongo.Collection
}

// NewJobRepository creates a job repository on db
func NewJobRepository(db *database.Mongo) *JobRepository {
	return &JobRepository{coll: db.Collection(database.JobsCollection)}
}

// Create inserts a new job and fills in its ID
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrValidation, err)
	}
	doc, err := toJobDocument(job)
	if err != nil {
		return err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		job.ID = oid.Hex()
	}
	return nil
}

// List returns the jobs matching filter, newest first
func (r *JobRepository) List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "postingDate", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Skip > 0 {
		opts.SetSkip(int64(filter.Skip))
	}

	cur, err := r.coll.Find(ctx, buildJobFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	defer cur.Close(ctx)

	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	jobs := make([]*model.Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, d.toModel())
	}
	return jobs, nil
}

// GetByID retrieves a job by ID. It returns nil, nil when the job does not
// exist and database.ErrInvalidID when id is not an ObjectID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc jobDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return doc.toModel(), nil
}

// Update replaces the mutable fields of an existing job. The owner is not written.
func (r *JobRepository) Update(ctx context.Context, job *model.Job) error {
	oid, err := parseObjectID(job.ID)
	if err != nil {
		return err
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrValidation, err)
	}
	doc, err := toJobDocument(job)
	if err != nil {
		return err
	}

	set := bson.D{
		{Key: "title", Value: doc.Title},
		{Key: "description", Value: doc.Description},
		{Key: "email", Value: doc.Email},
		{Key: "address", Value: doc.Address},
		{Key: "company", Value: doc.Company},
		{Key: "industry", Value: doc.Industry},
		{Key: "positions", Value: doc.Positions},
		{Key: "salary", Value: doc.Salary},
		{Key: "files", Value: doc.Files},
	}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a job. It returns database.ErrNotFound if nothing was deleted.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// buildJobFilter turns a job filter into a query document
func buildJobFilter(f model.JobFilter) bson.D {
	filter := bson.D{}
	if f.Keyword != "" {
		filter = append(filter, bson.E{Key: "title", Value: bson.Regex{Pattern: regexp.QuoteMeta(f.Keyword), Options: "i"}})
	}
	if f.Company != "" {
		filter = append(filter, bson.E{Key: "company", Value: f.Company})
	}
	if f.Industry != "" {
		// matches any element of the industry array
		filter = append(filter, bson.E{Key: "industry", Value: f.Industry})
	}

	salary := bson.D{}
	if f.MinSalary != nil {
		salary = append(salary, bson.E{Key: "$gte", Value: *f.MinSalary})
	}
	if f.MaxSalary != nil {
		salary = append(salary, bson.E{Key: "$lte", Value: *f.MaxSalary})
	}
	if len(salary) > 0 {
		filter = append(filter, bson.E{Key: "salary", Value: salary})
	}
	return filter
}
