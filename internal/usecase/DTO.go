package usecase

import (
	"io"

	"github.com/plastinin/bizreport/internal/domain"
)

// UploadReportInput входные данные загрузки отчёта
type UploadReportInput struct {
	FileName    string    // Имя файла
	ContentType string    // MIME тип
	FileSize    int64     // Размер файла
	FileReader  io.Reader // Содержимое файла
}

// ReportResult разобранные данные и резюме модели
type ReportResult struct {
	Dataset *domain.Dataset
	Summary string
}
