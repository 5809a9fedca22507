package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/riskibarqy/republic-cup/internal/platform/resilience"
)

// S3Config points the backup uploader at any S3-compatible bucket
// (AWS, Cloudflare R2, MinIO).
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ObjectStore uploads backup files to a bucket.
type S3ObjectStore struct {
	client  putObjectAPI
	bucket  string
	prefix  string
	breaker *resilience.CircuitBreaker
}

func NewS3ObjectStore(ctx context.Context, cfg S3Config, breaker *resilience.CircuitBreaker) (*S3ObjectStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("backup bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3ObjectStore(client, cfg.Bucket, cfg.Prefix, breaker), nil
}

func newS3ObjectStore(client putObjectAPI, bucket, prefix string, breaker *resilience.CircuitBreaker) *S3ObjectStore {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3ObjectStore{
		client:  client,
		bucket:  strings.TrimSpace(bucket),
		prefix:  prefix,
		breaker: breaker,
	}
}

func (s *S3ObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	objectKey := s.prefix + strings.TrimPrefix(key, "/")
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(objectKey),
			Body:          bytes.NewReader(body),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(body))),
		})
		if err != nil {
			return fmt.Errorf("upload object %s: %w", objectKey, err)
		}
		return nil
	})
}
