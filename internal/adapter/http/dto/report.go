package dto

import (
	"github.com/plastinin/bizreport/internal/domain"
	"github.com/plastinin/bizreport/internal/usecase"
)

// UploadResponse ответ на загрузку CSV
type UploadResponse struct {
	Data    *domain.Dataset `json:"data"`
	Columns []string        `json:"columns"`
	Summary string          `json:"summary"`
}

// UploadFromResult конвертирует результат use case в DTO
func UploadFromResult(result *usecase.ReportResult) *UploadResponse {
	columns := result.Dataset.Columns
	if columns == nil {
		columns = []string{}
	}

	return &UploadResponse{
		Data:    result.Dataset,
		Columns: columns,
		Summary: result.Summary,
	}
}

// SummarizeTextRequest запрос на суммаризацию текста
type SummarizeTextRequest struct {
	Text string `json:"text"`
}

// SummarizeTextResponse ответ с резюме
type SummarizeTextResponse struct {
	Summary string `json:"summary"`
}

// ExportRequest запрос на выгрузку записей в CSV.
// Columns необязателен, по умолчанию берётся порядок ключей в data.
type ExportRequest struct {
	Columns []string       `json:"columns,omitempty"`
	Data    domain.Dataset `json:"data"`
}

// Dataset возвращает набор с учётом явно заданных колонок
func (r *ExportRequest) Dataset() *domain.Dataset {
	ds := r.Data
	if len(r.Columns) > 0 {
		ds.Columns = r.Columns
	}
	return &ds
}
