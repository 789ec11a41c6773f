package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"file-manager-api/config"
)

// Client wraps a MinIO (or any S3-compatible) backend behind the small
// surface the file service needs.
type Client struct {
	logger *zap.Logger
	client *minio.Client

	endpoint   string
	bucket     string
	useSSL     bool
	publicBase string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Storage,
) (*Client, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("storage endpoint and bucket are required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err = mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
		logger.Info("storage bucket created", zap.String("bucket", cfg.Bucket))
	}

	if err = mc.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
		return nil, fmt.Errorf("failed to set bucket policy: %w", err)
	}

	logger.Info("storage connected successfully")

	return &Client{
		logger:     logger,
		client:     mc,
		endpoint:   cfg.Endpoint,
		bucket:     cfg.Bucket,
		useSSL:     cfg.UseSSL,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

// Upload streams reader to the bucket under key. size must be the exact byte
// count so the client does not buffer the whole body.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.client.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %q: %w", key, err)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %q: %w", key, err)
	}

	return nil
}

// GetPublicURL returns the browser-facing URL for key. With a CDN or reverse
// proxy in front, set STORAGE_PUBLIC_BASE and the raw endpoint never leaks.
func (c *Client) GetPublicURL(key string) string {
	if c.publicBase != "" {
		return c.publicBase + "/" + key
	}

	scheme := "http"
	if c.useSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.endpoint, c.bucket, key)
}

// publicReadPolicy allows anonymous GET on every object in the bucket.
func publicReadPolicy(bucket string) string {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)

	return string(b)
}
