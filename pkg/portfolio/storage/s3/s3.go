// Package s3 provides an S3-compatible blob store, usable against AWS S3 and
// MinIO-style services.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// Config options for the S3 backend.
type Config struct {
	Region          string // AWS region
	Bucket          string // bucket name
	AccessKeyID     string // access key; falls back to the default chain when empty
	SecretAccessKey string // secret key
	Endpoint        string // optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // path-style addressing, required by MinIO
	PublicBaseURL   string // base URL objects are publicly served under (e.g. a CDN)
	PresignDuration int    // seconds; presigned URLs are used when no PublicBaseURL is set

	CreateBucketIfNotExist bool // create the bucket on startup when missing
}

// Backend is an S3-compatible implementation of the portfolio.BlobStore
// interface.
type Backend struct {
	client          *s3.Client
	uploader        *manager.Uploader
	presignClient   *s3.PresignClient
	bucket          string
	publicBaseURL   string
	presignDuration time.Duration
	config          Config
}

// New creates a new S3-compatible storage backend.
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.PresignDuration == 0 {
		config.PresignDuration = 3600
	}

	var awsCfg aws.Config
	var err error
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	backend := &Backend{
		client:          client,
		uploader:        manager.NewUploader(client),
		presignClient:   s3.NewPresignClient(client),
		bucket:          config.Bucket,
		publicBaseURL:   strings.TrimRight(config.PublicBaseURL, "/"),
		presignDuration: time.Duration(config.PresignDuration) * time.Second,
		config:          config,
	}

	if config.CreateBucketIfNotExist {
		if err := backend.createBucketIfNotExists(context.Background()); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return backend, nil
}

func (b *Backend) createBucketIfNotExists(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) &&
		!strings.Contains(err.Error(), "BadRequest") &&
		!strings.Contains(err.Error(), "NoSuchBucket") {
		return fmt.Errorf("check bucket: %w", err)
	}

	createInput := &s3.CreateBucketInput{
		Bucket: aws.String(b.bucket),
	}
	if b.config.Region != "us-east-1" {
		createInput.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(b.config.Region),
		}
	}

	if _, err := b.client.CreateBucket(ctx, createInput); err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyExists") ||
			strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Upload streams the payload to the bucket under objectKey.
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	_, err := b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
		Body:   reader,
	})
	if err != nil {
		return &portfolio.StorageError{Backend: "s3", Key: objectKey, Op: "upload", Err: err}
	}
	return nil
}

// UploadWithParams streams the payload with an explicit content type.
func (b *Backend) UploadWithParams(ctx context.Context, reader io.Reader, params portfolio.UploadParams) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(params.ObjectKey),
		Body:   reader,
	}
	if params.MimeType != "" {
		input.ContentType = aws.String(params.MimeType)
	}

	if _, err := b.uploader.Upload(ctx, input); err != nil {
		return &portfolio.StorageError{Backend: "s3", Key: params.ObjectKey, Op: "upload", Err: err}
	}
	return nil
}

// Download retrieves the object body.
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, &portfolio.StorageError{Backend: "s3", Key: objectKey, Op: "download", Err: portfolio.ErrNotFound}
		}
		return nil, &portfolio.StorageError{Backend: "s3", Key: objectKey, Op: "download", Err: err}
	}
	return result.Body, nil
}

// URL returns the public address for objectKey: the configured base URL when
// the bucket fronts a CDN or public bucket, a presigned GET otherwise.
func (b *Backend) URL(ctx context.Context, objectKey string) (string, error) {
	if b.publicBaseURL != "" {
		return b.publicBaseURL + "/" + objectKey, nil
	}

	req, err := b.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(b.presignDuration))
	if err != nil {
		return "", &portfolio.StorageError{Backend: "s3", Key: objectKey, Op: "url", Err: err}
	}
	return req.URL, nil
}

// Delete removes the object.
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return &portfolio.StorageError{Backend: "s3", Key: objectKey, Op: "delete", Err: err}
	}
	return nil
}
