package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore uploads menu images and returns a durable URL reference.
type ImageStore interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}

// S3ImageStore implements ImageStore against an S3 (or LocalStack) bucket.
type S3ImageStore struct {
	client   *s3.Client
	bucket   string
	prefix   string
	baseURL  string // public base URL; derived when empty
	region   string
	endpoint string
}

// NewS3ImageStore creates a new S3ImageStore.
func NewS3ImageStore(client *s3.Client, bucket, prefix, baseURL, region, endpoint string) *S3ImageStore {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3ImageStore{
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		region:   region,
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}
}

// Upload stores the image under a timestamped key and returns its URL.
func (s *S3ImageStore) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	key := s.objectKey(header.Filename)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to s3: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *S3ImageStore) objectKey(filename string) string {
	sanitized := strings.ReplaceAll(filename, " ", "_")
	return fmt.Sprintf("%smenu_%d_%s", s.prefix, time.Now().UnixNano(), sanitized)
}

func (s *S3ImageStore) objectURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	if s.endpoint != "" {
		// Path-style for LocalStack-like endpoints
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
