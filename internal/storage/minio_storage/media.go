package minio_storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// MediaStorage stores user avatars and content images. Records hold the
// object key; URL resolves a key to a short-lived presigned link at
// serialization time.
type MediaStorage struct {
	storage    *MinioStorage
	bucket     string
	presignTTL time.Duration
}

func NewMediaStorage(storage *MinioStorage, bucket string, presignTTL time.Duration) (*MediaStorage, error) {
	if err := storage.ensureBucket(context.Background(), bucket); err != nil {
		return nil, err
	}
	return &MediaStorage{storage: storage, bucket: bucket, presignTTL: presignTTL}, nil
}

func (s *MediaStorage) UploadAvatar(
	ctx context.Context,
	userID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (objectKey string, err error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}

	objectKey = fmt.Sprintf("avatars/%s%s", userID.String(), ext)

	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err = s.storage.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *MediaStorage) URL(ctx context.Context, objectKey string) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := s.storage.client.PresignedGetObject(
		ctx,
		s.bucket,
		objectKey,
		s.presignTTL,
		reqParams,
	)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

func (s *MediaStorage) Delete(ctx context.Context, objectKey string) error {
	return s.storage.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
