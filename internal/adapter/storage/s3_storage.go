package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/plastinin/bizreport/internal/config"
	"github.com/plastinin/bizreport/internal/domain"
)

const stagingPrefix = "staging"

// S3Storage временное хранилище загрузок на базе S3/MinIO.
// Объекты живут только в пределах одного запроса.
type S3Storage struct {
	client *minio.Client
	bucket string
}

// NewS3Storage создаёт новый экземпляр S3Storage
func NewS3Storage(ctx context.Context, cfg config.S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Проверяем/создаём bucket
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	// Страховка от объектов, брошенных при аварийном завершении процесса
	if cfg.StagingTTLDays > 0 {
		if err := client.SetBucketLifecycle(ctx, cfg.Bucket, stagingLifecycle(cfg.StagingTTLDays)); err != nil {
			return nil, fmt.Errorf("failed to set bucket lifecycle: %w", err)
		}
	}

	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func stagingLifecycle(days int) *lifecycle.Configuration {
	return &lifecycle.Configuration{
		Rules: []lifecycle.Rule{
			{
				ID:     "expire-staged-uploads",
				Status: "Enabled",
				RuleFilter: lifecycle.Filter{
					Prefix: stagingPrefix + "/",
				},
				Expiration: lifecycle.Expiration{
					Days: lifecycle.ExpirationDays(days),
				},
			},
		},
	}
}

// Upload загружает файл в S3 и возвращает ключ
func (s *S3Storage) Upload(ctx context.Context, fileName string, contentType string, reader io.Reader, size int64) (string, error) {
	fileKey := stagingKey(time.Now(), uuid.New().String(), fileName)
	size, opts := putOptions(contentType, size)

	_, err := s.client.PutObject(ctx, s.bucket, fileKey, reader, size, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return fileKey, nil
}

// stagingKey строит ключ staging/year/month/day/id/filename
func stagingKey(now time.Time, id string, fileName string) string {
	return path.Join(
		stagingPrefix,
		now.Format("2006"),
		now.Format("01"),
		now.Format("02"),
		id,
		domain.SanitizeFileName(fileName),
	)
}

// putOptions multipart может не знать размер части, тогда размер -1
func putOptions(contentType string, size int64) (int64, minio.PutObjectOptions) {
	if contentType == "" {
		contentType = "text/csv"
	}
	if size <= 0 {
		size = -1
	}
	return size, minio.PutObjectOptions{ContentType: contentType}
}

// Download скачивает файл из S3
func (s *S3Storage) Download(ctx context.Context, fileKey string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, fileKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	// Проверяем, что объект существует
	_, err = obj.Stat()
	if err != nil {
		obj.Close()
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return obj, nil
}

// Delete удаляет файл из S3
func (s *S3Storage) Delete(ctx context.Context, fileKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, fileKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
