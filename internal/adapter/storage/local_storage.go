package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/plastinin/bizreport/internal/domain"
)

// LocalStorage временное хранилище загрузок на локальном диске
type LocalStorage struct {
	dir string
}

// NewLocalStorage создаёт хранилище и каталог под него
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir возвращает каталог хранения
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Upload сохраняет файл под уникальным именем и возвращает ключ
func (s *LocalStorage) Upload(ctx context.Context, fileName string, contentType string, reader io.Reader, size int64) (string, error) {
	// uuid в имени исключает коллизии параллельных загрузок
	fileKey := uuid.New().String() + "-" + domain.SanitizeFileName(fileName)
	path := filepath.Join(s.dir, fileKey)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write staged file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close staged file: %w", err)
	}

	return fileKey, nil
}

// Download открывает сохранённый файл на чтение
func (s *LocalStorage) Download(ctx context.Context, fileKey string) (io.ReadCloser, error) {
	path, err := s.path(fileKey)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staged file: %w", err)
	}
	return f, nil
}

// Delete удаляет сохранённый файл
func (s *LocalStorage) Delete(ctx context.Context, fileKey string) error {
	path, err := s.path(fileKey)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete staged file: %w", err)
	}
	return nil
}

// path не даёт ключу выйти за пределы каталога хранения
func (s *LocalStorage) path(fileKey string) (string, error) {
	if fileKey == "" || fileKey != filepath.Base(fileKey) {
		return "", errors.New("invalid file key")
	}
	return filepath.Join(s.dir, fileKey), nil
}
