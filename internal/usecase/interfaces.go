package usecase

import (
	"context"
	"io"

	"github.com/plastinin/bizreport/internal/domain"
)

// FileStorage интерфейс временного хранилища загрузок (диск или S3)
type FileStorage interface {
	Upload(ctx context.Context, fileName string, contentType string, reader io.Reader, size int64) (fileKey string, err error)
	Download(ctx context.Context, fileKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, fileKey string) error
}

// Summarizer интерфейс провайдера суммаризации
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// CSVCodec интерфейс разбора и кодирования CSV
type CSVCodec interface {
	Parse(r io.Reader) (*domain.Dataset, error)
	Write(w io.Writer, ds *domain.Dataset) error
}
