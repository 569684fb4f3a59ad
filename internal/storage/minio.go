package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds the connection settings for a MinIO-backed store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore persists attachments in a MinIO bucket under the same fixed
// uploads prefix as the disk store.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to MinIO and ensures the configured bucket exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads the object and returns its relative URL.
func (s *MinioStore) Save(ctx context.Context, src io.Reader, size int64, name, contentType string) (string, error) {
	object := path.Join(strings.TrimPrefix(uploadPrefix, "/"), name)
	_, err := s.client.PutObject(ctx, s.bucket, object, src, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return "/" + object, nil
}

// Delete removes the object; MinIO treats removal of a missing object as
// success, which matches the best-effort contract.
func (s *MinioStore) Delete(ctx context.Context, relPath string) error {
	object := strings.TrimPrefix(relPath, "/")
	return s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{})
}
