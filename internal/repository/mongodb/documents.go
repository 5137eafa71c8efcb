package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
)

type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Role      string        `bson:"role"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type attachmentDocument struct {
	Location    string    `bson:"location"`
	Key         string    `bson:"key"`
	Bucket      string    `bson:"bucket"`
	Name        string    `bson:"name"`
	ContentType string    `bson:"contentType,omitempty"`
	Size        int64     `bson:"size"`
	UploadedAt  time.Time `bson:"uploadedAt"`
}

type jobDocument struct {
	ID          bson.ObjectID        `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Email       string               `bson:"email"`
	Address     string               `bson:"address"`
	Company     string               `bson:"company"`
	Industry    []string             `bson:"industry"`
	Positions   int                  `bson:"positions"`
	Salary      float64              `bson:"salary"`
	PostingDate time.Time            `bson:"postingDate"`
	User        bson.ObjectID        `bson:"user"`
	Files       []attachmentDocument `bson:"files"`
}

// parseObjectID maps a malformed hex id to database.ErrInvalidID
func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", database.ErrInvalidID, id)
	}
	return oid, nil
}

func toUserDocument(u *model.User) userDocument {
	return userDocument{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func (d userDocument) toModel() *model.User {
	return &model.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Role:      model.UserRole(d.Role),
		CreatedAt: d.CreatedAt,
	}
}

func toJobDocument(j *model.Job) (jobDocument, error) {
	owner, err := parseObjectID(j.User)
	if err != nil {
		return jobDocument{}, err
	}

	industry := j.Industry
	if industry == nil {
		industry = []string{}
	}
	files := make([]attachmentDocument, 0, len(j.Files))
	for _, f := range j.Files {
		files = append(files, attachmentDocument(f))
	}

	return jobDocument{
		Title:       j.Title,
		Description: j.Description,
		Email:       j.Email,
		Address:     j.Address,
		Company:     j.Company,
		Industry:    industry,
		Positions:   j.Positions,
		Salary:      j.Salary,
		PostingDate: j.PostingDate,
		User:        owner,
		Files:       files,
	}, nil
}

func (d jobDocument) toModel() *model.Job {
	industry := d.Industry
	if industry == nil {
		industry = []string{}
	}
	files := make([]model.Attachment, 0, len(d.Files))
	for _, f := range d.Files {
		files = append(files, model.Attachment(f))
	}

	return &model.Job{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Email:       d.Email,
		Address:     d.Address,
		Company:     d.Company,
		Industry:    industry,
		Positions:   d.Positions,
		Salary:      d.Salary,
		PostingDate: d.PostingDate,
		User:        d.User.Hex(),
		Files:       files,
	}
}
