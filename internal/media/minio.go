// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/taibuivan/vidora/pkg/uuid"
)

// HostConfig carries the media host connection settings.
//
// It is an injected value, populated from environment configuration in the
// composition root and passed to [NewClient].
type HostConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

// objectAPI is the narrow slice of the MinIO SDK the adapter needs.
// Keeping it internal enables unit testing without a live object store.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Client implements [Host] against an S3-compatible object store.
type Client struct {
	api       objectAPI
	bucket    string
	publicURL string
	logger    *slog.Logger
}

// Compile-time contract check.
var _ Host = (*Client)(nil)

// NewClient connects to the object store and ensures the bucket exists.
func NewClient(ctx context.Context, cfg HostConfig, logger *slog.Logger) (*Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("media: failed to construct client: %w", err)
	}

	return NewClientWithAPI(ctx, minioClient, cfg, logger)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api objectAPI, cfg HostConfig, logger *slog.Logger) (*Client, error) {
	client := &Client{
		api:       api,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}

	if err := client.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("media: failed to ensure bucket exists: %w", err)
	}

	return client, nil
}

// ensureBucketExists creates the bucket if it doesn't exist.
func (client *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := client.api.BucketExists(ctx, client.bucket)
	if err != nil {
		return fmt.Errorf("media: bucket existence check failed: %w", err)
	}

	if !exists {
		if err := client.api.MakeBucket(ctx, client.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("media: bucket creation failed: %w", err)
		}
	}

	return nil
}

/*
Upload transfers a staged local file to the object store.

Description: Generates a time-sortable object key under the kind's prefix,
pushes the file, and builds the public URL. The local temp file is removed on
BOTH the success and the failure path — upload staging never leaks disk.

Parameters:
  - context: context.Context
  - localPath: string
  - kind: Kind

Returns:
  - Asset: Stable content identifier + public URL
  - error: Transfer failures
*/
func (client *Client) Upload(context context.Context, localPath string, kind Kind) (Asset, error) {
	if localPath == "" {
		return Asset{}, nil
	}

	// Guaranteed temp-file cleanup regardless of the upload outcome.
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			client.logger.Warn("media_temp_cleanup_failed",
				slog.String("path", localPath),
				slog.Any("error", err),
			)
		}
	}()

	objectKey := fmt.Sprintf("%s/%s%s", kind, uuid.New(), path.Ext(localPath))

	if _, err := client.api.FPutObject(context, client.bucket, objectKey, localPath, minio.PutObjectOptions{}); err != nil {
		return Asset{}, fmt.Errorf("media: upload of %s failed: %w", objectKey, err)
	}

	return Asset{
		ID:  objectKey,
		URL: fmt.Sprintf("%s/%s/%s", client.publicURL, client.bucket, objectKey),
	}, nil
}

/*
Delete removes a remote asset by identifier.

Parameters:
  - context: context.Context
  - id: string (object key; "" is a no-op)
  - kind: Kind

Returns:
  - error: Upstream deletion failures
*/
func (client *Client) Delete(context context.Context, id string, kind Kind) error {
	if id == "" {
		return nil
	}

	if err := client.api.RemoveObject(context, client.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("media: delete of %s (%s) failed: %w", id, kind, err)
	}

	return nil
}
