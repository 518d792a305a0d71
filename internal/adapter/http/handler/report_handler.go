package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/plastinin/bizreport/internal/adapter/http/dto"
	"github.com/plastinin/bizreport/internal/domain"
	"github.com/plastinin/bizreport/internal/usecase"
	"go.uber.org/zap"
)

const (
	// Сверх этого объёма multipart части уходят во временные файлы
	multipartMemory = 1 << 20 // 1 MB
	// Ограничение тела JSON запросов
	maxJSONBodySize = 5 << 20 // 5 MB

	exportFileName = "business_data.csv"
)

// ReportHandler обработчик HTTP запросов для отчётов
type ReportHandler struct {
	reportUC      *usecase.ReportUseCase
	maxUploadSize int64
	logger        *zap.Logger
}

// NewReportHandler создаёт новый ReportHandler
func NewReportHandler(reportUC *usecase.ReportUseCase, maxUploadSize int64, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportUC:      reportUC,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Upload принимает CSV, возвращает записи и резюме
// POST /upload
// Content-Type: multipart/form-data
// - file: CSV файл
func (h *ReportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Ограничиваем размер загрузки
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			h.respondError(w, http.StatusRequestEntityTooLarge, dto.CodeValidation, "File is too large")
			return
		}
		h.logger.Warn("Failed to parse multipart form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, dto.CodeValidation, "File is required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("Failed to get file from form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, dto.CodeValidation, "File is required")
		return
	}
	defer file.Close()

	input := usecase.UploadReportInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		FileSize:    header.Size,
		FileReader:  file,
	}

	result, err := h.reportUC.ProcessUpload(r.Context(), input)
	if err != nil {
		h.handleError(w, err, "Failed to process upload")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.UploadFromResult(result))
}

// SummarizeText суммаризирует текст из тела запроса
// POST /summarize-text
// {"text": "..."}
func (h *ReportHandler) SummarizeText(w http.ResponseWriter, r *http.Request) {
	var req dto.SummarizeTextRequest
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Failed to decode summarize request", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, dto.CodeValidation, domain.MissingTextMessage)
		return
	}

	summary, err := h.reportUC.SummarizeText(r.Context(), req.Text)
	if err != nil {
		h.handleError(w, err, "Failed to summarize text")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.SummarizeTextResponse{Summary: summary})
}

// Export выгружает записи в CSV файл
// POST /export
// {"columns": [...], "data": [{...}]}
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req dto.ExportRequest
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode export request", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, dto.CodeValidation, "Invalid export request body")
		return
	}

	ds := req.Dataset()
	if len(ds.Columns) == 0 {
		h.respondError(w, http.StatusBadRequest, dto.CodeValidation, "No data to export")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	if err := h.reportUC.ExportCSV(ds, w); err != nil {
		// Заголовки уже отправлены, остаётся только залогировать
		h.logger.Error("Failed to write CSV export", zap.Error(err))
	}
}

// handleError переводит ошибку use case в HTTP ответ
func (h *ReportHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	var (
		validationErr *domain.ValidationError
		parseErr      *domain.ParseError
		sumErr        *domain.SummarizationError
	)

	switch {
	case errors.As(err, &validationErr):
		h.logger.Warn("Request validation failed", zap.String("field", validationErr.Field), zap.Error(err))
		h.respondError(w, http.StatusBadRequest, dto.CodeValidation, err.Error())
	case errors.As(err, &parseErr):
		h.logger.Warn("CSV parse failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, dto.CodeParse, err.Error())
	case errors.As(err, &sumErr):
		code := dto.CodeSummarization
		if sumErr.Timeout {
			code = dto.CodeTimeout
		}
		h.logger.Error("Summarization failed", zap.String("code", code), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, code, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, dto.CodeInternal, fallback)
	}
}

// isBodyTooLarge multipart может вернуть ошибку MaxBytesReader без обёртки
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// respondJSON отправляет JSON ответ
func (h *ReportHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError отправляет ответ с ошибкой
func (h *ReportHandler) respondError(w http.ResponseWriter, status int, code string, message string) {
	h.respondJSON(w, status, dto.NewErrorResponse(message, code))
}
