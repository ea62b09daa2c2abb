// Package s3store keeps generated documents in an S3-compatible bucket.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"devis/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config locates the bucket. Endpoint is set for S3-compatible servers such
// as MinIO; PublicBaseURL is the prefix under which objects are served.
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// objectAPI is the subset of the S3 client used by Store.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store implements ports.ObjectStore.
type Store struct {
	api     objectAPI
	bucket  string
	baseURL string
}

// NewClient builds an S3 client. Static credentials are used when both keys
// are set, otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewStore stores objects in bucket and builds their URLs under
// publicBaseURL. Both are required.
//
// Example:
//
//	client, err := s3store.NewClient(ctx, cfg.S3())
//	if err != nil {
//	    return nil, err
//	}
//	store, err := s3store.NewStore(client, "devis-quotes", "https://cdn.example.com/devis")
//	// store.Upload(ctx, pdf, "quotes/DEV-2025-0001.pdf", "application/pdf")
//	// returns "https://cdn.example.com/devis/quotes/DEV-2025-0001.pdf"
func NewStore(api objectAPI, bucket, publicBaseURL string) (*Store, error) {
	var errList []error
	if bucket == "" {
		errList = append(errList, errs.NewValueIsRequiredError("bucket"))
	}
	if publicBaseURL == "" {
		errList = append(errList, errs.NewValueIsRequiredError("publicBaseURL"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Store{
		api:     api,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(publicBaseURL, "/") + "/",
	}, nil
}

// Upload writes data at path, replacing any previous object, and returns its public URL.
func (s *Store) Upload(ctx context.Context, data []byte, path, contentType string) (string, error) {
	key := strings.TrimPrefix(path, "/")
	if key == "" {
		return "", errs.NewValueIsRequiredError("path")
	}

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", errs.NewDependencyFailureErrorWithCause("object store", err)
	}
	return s.baseURL + key, nil
}

// Delete removes the object at path. S3 treats a missing key as deleted.
func (s *Store) Delete(ctx context.Context, path string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.TrimPrefix(path, "/")),
	})
	if err != nil {
		return errs.NewDependencyFailureErrorWithCause("object store", err)
	}
	return nil
}

// PathFromURL reverses Upload. It reports false for URLs this store did not produce.
func (s *Store) PathFromURL(url string) (string, bool) {
	path, ok := strings.CutPrefix(url, s.baseURL)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}
