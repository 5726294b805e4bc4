package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/hotelops-dashboard/internal/config"
	"github.com/gravadigital/hotelops-dashboard/internal/logger"
)

const (
	objectPrefix  = "previews/"
	metaFilename  = "filename"
	noSuchKeyCode = "NoSuchKey"
)

// MinioStore keeps previews as objects in a MinIO (or S3 compatible) bucket
type MinioStore struct {
	client *minio.Client
	bucket string
	log    *log.Logger
}

// NewMinioStore connects to MinIO and makes sure the preview bucket exists
func NewMinioStore(ctx context.Context, cfg *config.Config) (*MinioStore, error) {
	log := logger.Storage("minio")

	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Minio.Bucket, err)
	}
	if !exists {
		log.Info("Creating preview bucket", "bucket", cfg.Minio.Bucket)
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Minio.Bucket, err)
		}
	}

	log.Info("MinIO preview store ready", "endpoint", cfg.Minio.Endpoint, "bucket", cfg.Minio.Bucket)
	return &MinioStore{client: client, bucket: cfg.Minio.Bucket, log: log}, nil
}

func (s *MinioStore) Put(ctx context.Context, filename, contentType string, data []byte) (Handle, error) {
	h := Handle{
		ID:          uuid.NewString(),
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		StoredAt:    time.Now().UTC(),
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectKey(h.ID), bytes.NewReader(data), h.Size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{metaFilename: filename},
	})
	if err != nil {
		return Handle{}, fmt.Errorf("failed to store preview: %w", err)
	}

	s.log.Debug("Preview stored", "id", h.ID, "filename", filename, "size", h.Size)
	return h, nil
}

func (s *MinioStore) Get(ctx context.Context, id string) (*Object, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioError(err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, mapMinioError(err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read preview: %w", err)
	}

	return &Object{
		Handle: Handle{
			ID:          id,
			Filename:    lookupMeta(info.UserMetadata, metaFilename),
			ContentType: info.ContentType,
			Size:        info.Size,
			StoredAt:    info.LastModified,
		},
		Data: data,
	}, nil
}

func (s *MinioStore) Revoke(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey(id), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to revoke preview %s: %w", id, err)
	}
	return nil
}

func objectKey(id string) string {
	return objectPrefix + id
}

func mapMinioError(err error) error {
	if minio.ToErrorResponse(err).Code == noSuchKeyCode {
		return ErrNotFound
	}
	return fmt.Errorf("failed to load preview: %w", err)
}

// lookupMeta reads user metadata regardless of header canonicalization
func lookupMeta(meta map[string]string, key string) string {
	for k, v := range meta {
		if strings.EqualFold(strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-"), key) {
			return v
		}
	}
	return ""
}
