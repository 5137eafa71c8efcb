package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// putObjectAPI is the slice of the S3 client used for uploads
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads to an S3 bucket
type S3 struct {
	client putObjectAPI
	bucket string
	base   string
}

// NewS3 builds an S3 uploader. Static credentials are used when an access
// key is configured; otherwise the default AWS credential chain applies.
// A custom endpoint switches to path-style addressing.
func NewS3(ctx context.Context, cfg Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3(client, cfg), nil
}

func newS3(client putObjectAPI, cfg Config) *S3 {
	var base string
	if cfg.Endpoint != "" {
		scheme, host := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
		base = fmt.Sprintf("%s://%s/%s/", scheme, host, cfg.Bucket)
	} else {
		base = fmt.Sprintf("https://%s.s3.amazonaws.com/", cfg.Bucket)
	}
	return &S3{client: client, bucket: cfg.Bucket, base: base}
}

// Upload puts the file into the bucket
func (s *S3) Upload(ctx context.Context, f File) (*Object, error) {
	if err := checkFile(f); err != nil {
		return nil, err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(f.Key),
		Body:   f.Body,
	}
	if f.Size > 0 {
		input.ContentLength = aws.Int64(f.Size)
	}
	if f.ContentType != "" {
		input.ContentType = aws.String(f.ContentType)
	}

	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", f.Key, err)
	}

	return &Object{
		Location: s.base + f.Key,
		Key:      f.Key,
		Bucket:   s.bucket,
		ETag:     aws.ToString(out.ETag),
	}, nil
}
