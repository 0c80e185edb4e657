package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotConfigured is returned by service methods whose backing collaborator
// has no configuration. Handlers map it to 503.
var ErrNotConfigured = errors.New("external service not configured")

// Storage wraps the object store holding uploaded files, cover photos and
// signature images.
type Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewStorageFromEnv builds a Storage from MINIO_* env vars. Returns nil
// (not an error) when no endpoint is configured so callers can run without
// object storage in development.
func NewStorageFromEnv() (*Storage, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "pitchdesk"
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return &Storage{
		client:    client,
		bucket:    bucket,
		publicURL: scheme + "://" + endpoint + "/" + bucket,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Upload stores an object and returns its public URL.
func (s *Storage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return s.publicURL + "/" + objectName, nil
}

// UploadDataURL decodes a data-URL (or bare base64) image payload and
// stores it under the given prefix. The payload is treated as opaque
// beyond decoding; signature pads and uploads both produce this shape.
func (s *Storage) UploadDataURL(ctx context.Context, prefix, payload string) (string, error) {
	contentType := "image/png"
	if strings.HasPrefix(payload, "data:") {
		rest := payload[len("data:"):]
		if idx := strings.Index(rest, ";base64,"); idx >= 0 {
			contentType = rest[:idx]
			payload = rest[idx+len(";base64,"):]
		}
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("invalid image payload: %w", err)
	}

	ext := "png"
	if idx := strings.Index(contentType, "/"); idx >= 0 && idx+1 < len(contentType) {
		ext = contentType[idx+1:]
	}
	objectName := fmt.Sprintf("%s/%s.%s", prefix, uuid.NewString(), ext)

	return s.Upload(ctx, objectName, bytes.NewReader(raw), int64(len(raw)), contentType)
}
