// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides the object store used for all persisted content.
// Documents, article bodies, and derived indexes live as keys under a
// configurable base path in an S3-compatible bucket. It wraps the AWS SDK v2
// and is configured for path-style access (required by CEPH/Hetzner/R2).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Store is the key-value object store the content repository runs on.
// Keys are relative paths ("docs/faq.md"); implementations own any
// base-path prefixing. There is no atomicity across keys.
type Store interface {
	// Get returns the object's content. ok is false when the key does not
	// exist, which is distinct from an empty object.
	Get(ctx context.Context, key string) (content string, ok bool, err error)

	// GetBytes returns raw object bytes and the stored content type.
	GetBytes(ctx context.Context, key string) (data []byte, contentType string, ok bool, err error)

	// Put writes the object, replacing any existing content.
	Put(ctx context.Context, key, content, contentType string) error

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// S3Store implements Store over an S3-compatible bucket.
type S3Store struct {
	s3       *s3.Client
	bucket   string
	basePath string
}

// NewS3 creates an object store client configured for path-style addressing
// with static credentials. basePath is prepended to every key so several
// deployments can share one bucket.
func NewS3(endpoint, region, accessKey, secretKey, bucket, basePath string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	endpoint = strings.TrimRight(endpoint, "/")

	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
	}

	return &S3Store{
		s3:       s3.New(opts),
		bucket:   bucket,
		basePath: strings.Trim(basePath, "/"),
	}, nil
}

// fullKey prepends the configured base path to a relative key.
func (s *S3Store) fullKey(key string) string {
	if s.basePath == "" {
		return key
	}
	return s.basePath + "/" + key
}

// Get retrieves an object as a UTF-8 string.
func (s *S3Store) Get(ctx context.Context, key string) (string, bool, error) {
	data, _, ok, err := s.GetBytes(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	return string(data), true, nil
}

// GetBytes retrieves an object's raw bytes and content type.
func (s *S3Store) GetBytes(ctx context.Context, key string) ([]byte, string, bool, error) {
	output, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fullKey(key)),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, "", false, nil
		}
		return nil, "", false, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, "", false, fmt.Errorf("s3 read body %s: %w", key, err)
	}

	contentType := "application/octet-stream"
	if output.ContentType != nil {
		contentType = *output.ContentType
	}
	return data, contentType, true, nil
}

// Put stores an object with the given content type.
func (s *S3Store) Put(ctx context.Context, key, content, contentType string) error {
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.fullKey(key)),
		Body:        strings.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// Delete removes an object. S3 treats deleting a missing key as success.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fullKey(key)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

// List returns all keys under prefix, relative to the base path.
// Paginates through the bucket until the listing is exhausted.
func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var continuation *string

	strip := ""
	if s.basePath != "" {
		strip = s.basePath + "/"
	}

	for {
		output, err := s.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(s.fullKey(prefix)),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 list %s: %w", prefix, err)
		}

		for _, obj := range output.Contents {
			if obj.Key == nil {
				continue
			}
			keys = append(keys, strings.TrimPrefix(*obj.Key, strip))
		}

		if output.NextContinuationToken == nil {
			break
		}
		continuation = output.NextContinuationToken
	}

	return keys, nil
}
