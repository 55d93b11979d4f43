package storage

import (
	"bytes"
	"context"
	"fmt"

	"tempus/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the blob-storage seam used by report generation.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// S3Store stores objects in a single S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(region, bucket, accessKeyID, secretAccessKey string) *S3Store {
	cfg := aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
	}
	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket}
}

// Put uploads body under key and returns the object's s3 URI.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("S3Store:Put", "bucket", s.bucket, "key", key, "error", err)
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
