// Package storage uploads job attachments to object storage.
//
// Two backends share the Uploader interface:
//
//   - S3 talks to AWS S3 (or any S3-compatible endpoint) through aws-sdk-go-v2
//   - MinIO talks to a MinIO server through minio-go
//
// Uploads are single blocking puts; callers bound them with the request context.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoBucket = errors.New("storage: bucket is required")
	ErrNoBody   = errors.New("storage: file body is required")
)

// File is an object to upload
type File struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

// Object describes an uploaded file
type Object struct {
	Location string
	Key      string
	Bucket   string
	ETag     string
}

// Uploader stores files in a bucket
type Uploader interface {
	Upload(ctx context.Context, file File) (*Object, error)
}

// Config holds connection settings shared by both backends
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// ObjectKey builds a collision-free key for a file attached to a job.
// The original extension is kept, lowercased.
func ObjectKey(prefix, jobID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, jobID, uuid.NewString()+ext)
}

func checkFile(f File) error {
	if f.Body == nil {
		return ErrNoBody
	}
	if f.Key == "" {
		return errors.New("storage: object key is required")
	}
	return nil
}

// splitEndpoint separates an optional scheme from host[:port]
func splitEndpoint(endpoint string, useSSL bool) (scheme, host string) {
	scheme = "http"
	if useSSL {
		scheme = "https"
	}
	host = endpoint
	if i := strings.Index(endpoint, "://"); i >= 0 {
		scheme, host = endpoint[:i], endpoint[i+3:]
	}
	return scheme, strings.TrimRight(host, "/")
}
