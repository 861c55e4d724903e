package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds explicit construction parameters. Credentials come from
// the default AWS chain (environment, shared config, instance role).
type S3Config struct {
	Bucket    string
	Region    string // default us-east-1
	Endpoint  string // optional; enables an S3-compatible endpoint (e.g. MinIO)
	Prefix    string // object key prefix, default "snapshots/"
	PathStyle bool
}

// S3 is a Store backend persisting snapshots as JSON objects in a single
// bucket; identifiers map to object keys under a fixed prefix.
type S3[T Aggregate] struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 constructs an S3-backed store from cfg. The bucket must already
// exist; no network call is made until the first operation.
func NewS3[T Aggregate](ctx context.Context, cfg S3Config) (*S3[T], error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "snapshots/"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3[T]{client: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

func (s *S3[T]) key(id string) string { return s.prefix + id }

// Save upserts the aggregate's snapshot. S3 object puts replace wholesale,
// matching the relational backends' upsert.
func (s *S3[T]) Save(ctx context.Context, aggregate T) error {
	id := aggregate.AggregateID()
	if id == "" {
		return ErrTransient
	}
	payload, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(id)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the aggregate stored under id.
func (s *S3[T]) Load(ctx context.Context, id string) (T, error) {
	var out T
	obj, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if isObjectMissing(err) {
		return out, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return out, fmt.Errorf("get snapshot: %w", err)
	}
	defer func() { _ = obj.Body.Close() }()
	payload, err := io.ReadAll(obj.Body)
	if err != nil {
		return out, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return out, nil
}

// Delete removes the snapshot stored under id. Object deletes are
// unconditional in S3, so existence is checked first to honor the
// not-found contract.
func (s *S3[T]) Delete(ctx context.Context, id string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if isObjectMissing(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("head snapshot: %w", err)
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	}); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// List returns all stored aggregates ordered by identifier. S3 lists keys
// lexicographically, which matches identifier order under a fixed prefix.
func (s *S3[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	var token *string
	for {
		page, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(s.prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		for _, obj := range page.Contents {
			id := aws.ToString(obj.Key)[len(s.prefix):]
			agg, err := s.Load(ctx, id)
			if err != nil {
				return nil, err
			}
			out = append(out, agg)
		}
		if page.IsTruncated != nil && *page.IsTruncated && page.NextContinuationToken != nil {
			token = page.NextContinuationToken
			continue
		}
		break
	}
	return out, nil
}

// Close is a no-op; the underlying HTTP client needs no teardown.
func (s *S3[T]) Close() error { return nil }

func isObjectMissing(err error) bool {
	if err == nil {
		return false
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
