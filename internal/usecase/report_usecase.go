package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/plastinin/bizreport/internal/domain"
	"go.uber.org/zap"
)

// ReportUseCase бизнес-логика загрузки и суммаризации отчётов
type ReportUseCase struct {
	fileStorage FileStorage
	codec       CSVCodec
	summarizer  Summarizer
	logger      *zap.Logger
}

// NewReportUseCase создаёт новый экземпляр ReportUseCase
func NewReportUseCase(
	fileStorage FileStorage,
	codec CSVCodec,
	summarizer Summarizer,
	logger *zap.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		fileStorage: fileStorage,
		codec:       codec,
		summarizer:  summarizer,
		logger:      logger,
	}
}

// ProcessUpload сохраняет файл, разбирает CSV, запрашивает резюме.
// Сохранённый файл удаляется ровно один раз на любом пути выхода.
func (uc *ReportUseCase) ProcessUpload(ctx context.Context, input UploadReportInput) (*ReportResult, error) {
	if err := domain.ValidateUpload(input.FileName, input.ContentType); err != nil {
		return nil, err
	}

	fileKey, err := uc.fileStorage.Upload(ctx, input.FileName, input.ContentType, input.FileReader, input.FileSize)
	if err != nil {
		uc.logger.Error("Failed to stage uploaded file",
			zap.String("file_name", input.FileName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to stage file: %w", err)
	}
	defer uc.removeStaged(fileKey)

	uc.logger.Debug("File staged",
		zap.String("file_key", fileKey),
		zap.String("file_name", input.FileName),
	)

	ds, err := uc.parseStaged(ctx, fileKey)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildReportPrompt(ds)
	if err != nil {
		return nil, err
	}

	summary, err := uc.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Report summarized",
		zap.String("file_name", input.FileName),
		zap.Int("records", ds.Len()),
		zap.Int("columns", len(ds.Columns)),
		zap.Int("summary_length", len(summary)),
	)

	return &ReportResult{
		Dataset: ds,
		Summary: summary,
	}, nil
}

// SummarizeText суммаризирует произвольный текст без разбора и хранения
func (uc *ReportUseCase) SummarizeText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.NewValidationError("text", domain.MissingTextMessage)
	}

	summary, err := uc.summarizer.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	uc.logger.Info("Text summarized",
		zap.Int("input_length", len(text)),
		zap.Int("summary_length", len(summary)),
	)

	return summary, nil
}

// ExportCSV записывает набор в CSV
func (uc *ReportUseCase) ExportCSV(ds *domain.Dataset, w io.Writer) error {
	if ds == nil || len(ds.Columns) == 0 {
		return domain.NewValidationError("data", "No data to export")
	}
	return uc.codec.Write(w, ds)
}

func (uc *ReportUseCase) parseStaged(ctx context.Context, fileKey string) (*domain.Dataset, error) {
	rc, err := uc.fileStorage.Download(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open staged file: %w", err)
	}
	defer rc.Close()

	ds, err := uc.codec.Parse(rc)
	if err != nil {
		uc.logger.Warn("Failed to parse CSV",
			zap.String("file_key", fileKey),
			zap.Error(err),
		)
		return nil, err
	}

	return ds, nil
}

// removeStaged удаляет сохранённый файл; контекст запроса может быть уже отменён
func (uc *ReportUseCase) removeStaged(fileKey string) {
	if err := uc.fileStorage.Delete(context.Background(), fileKey); err != nil {
		uc.logger.Warn("Failed to delete staged file",
			zap.String("file_key", fileKey),
			zap.Error(err),
		)
		return
	}

	uc.logger.Debug("Staged file deleted", zap.String("file_key", fileKey))
}
