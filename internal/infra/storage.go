package infra

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/LilDeus06/trazabilidad-sub000/internal/config"
)

// ObjectStorage is the contract services depend on for avatar objects.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, keys ...string) error
	PublicURL(key string) string
}

// S3Storage talks to any S3-compatible backend (AWS, MinIO). Calls run
// through a circuit breaker so an unavailable backend fast-fails instead of
// stalling avatar requests.
type S3Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	breaker       *CircuitBreaker
}

// NewS3Storage builds the client. Static credentials are used when provided
// (MinIO / explicit keys); otherwise the default AWS credential chain applies.
func NewS3Storage(ctx context.Context, cfg *config.Config, breaker *CircuitBreaker) (*S3Storage, error) {
	var awsCfg aws.Config
	var err error

	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKey, cfg.S3SecretKey, "",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		if cfg.S3UsePathStyle {
			o.UsePathStyle = true
		}
	})

	base := cfg.S3PublicBaseURL
	if base == "" {
		base = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}

	return &S3Storage{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimSuffix(base, "/"),
		breaker:       breaker,
	}, nil
}

// Put uploads an object and returns its public URL.
func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	err := s.breaker.Execute(func() error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// Remove deletes objects; missing keys are not an error.
func (s *S3Storage) Remove(ctx context.Context, keys ...string) error {
	return s.breaker.Execute(func() error {
		for _, key := range keys {
			if key == "" {
				continue
			}
			_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// PublicURL returns the client-facing URL of a stored object.
func (s *S3Storage) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

// Breaker exposes the CB for the health endpoint.
func (s *S3Storage) Breaker() *CircuitBreaker { return s.breaker }
