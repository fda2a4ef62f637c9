package config

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds the object-store client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
	baseURL    string
}

// NewS3Config initializes the S3 client against the configured MinIO endpoint
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	endpoint := fmt.Sprintf("%s://%s:%s", scheme, cfg.MinioEndpoint, cfg.MinioPort)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		// MinIO serves buckets on the path, not as subdomains
		o.UsePathStyle = true
	})

	return &S3Config{
		Client:     client,
		BucketName: cfg.MinioBucket,
		baseURL:    endpoint,
	}, nil
}

// EnsureBucket creates the upload bucket if it does not exist yet
func (s *S3Config) EnsureBucket(ctx context.Context) error {
	_, err := s.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	if err == nil {
		log.Printf("[Storage] Bucket already exists: %s", s.BucketName)
		return nil
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to check bucket %s: %w", s.BucketName, err)
	}

	if _, err := s.Client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.BucketName),
	}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.BucketName, err)
	}

	log.Printf("[Storage] Created bucket: %s", s.BucketName)
	return nil
}

// PublicURL returns the direct URL of an object in the public bucket
func (s *S3Config) PublicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.BucketName, objectName)
}
