package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO uploads to a MinIO bucket
type MinIO struct {
	client *minio.Client
	bucket string
	base   string
}

// NewMinIO connects to the MinIO server and creates the bucket if missing
func NewMinIO(ctx context.Context, cfg Config) (*MinIO, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	scheme, host := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: scheme == "https",
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket check failed: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket failed: %w", err)
		}
	}

	return &MinIO{
		client: client,
		bucket: cfg.Bucket,
		base:   fmt.Sprintf("%s://%s/%s/", scheme, host, cfg.Bucket),
	}, nil
}

// Upload puts the file into the bucket. A zero size streams until EOF.
func (m *MinIO) Upload(ctx context.Context, f File) (*Object, error) {
	if err := checkFile(f); err != nil {
		return nil, err
	}

	size := f.Size
	if size <= 0 {
		size = -1
	}

	info, err := m.client.PutObject(ctx, m.bucket, f.Key, f.Body, size, minio.PutObjectOptions{
		ContentType: f.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("minio put %s: %w", f.Key, err)
	}

	return &Object{
		Location: m.base + f.Key,
		Key:      info.Key,
		Bucket:   info.Bucket,
		ETag:     info.ETag,
	}, nil
}
