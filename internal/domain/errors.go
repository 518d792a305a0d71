package domain

import (
	"errors"
)

// Ошибки домена. Конкретные типы ниже сводятся к ним через errors.Is
var (
	ErrParse         = errors.New("parse error")
	ErrSummarization = errors.New("summarization failed")
	ErrValidation    = errors.New("validation error")
)

// ParseError CSV не удалось прочитать или декодировать
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "failed to parse CSV: " + e.Err.Error()
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// SummarizationError ошибка обращения к провайдеру суммаризации.
// Таймаут не выделяется в отдельный вид ошибки, только флагом.
type SummarizationError struct {
	Reason  string
	Timeout bool
	Err     error
}

// NewSummarizationError создаёт ошибку суммаризации
func NewSummarizationError(reason string, err error) *SummarizationError {
	return &SummarizationError{Reason: reason, Err: err}
}

// NewSummarizationTimeout создаёт ошибку суммаризации по таймауту
func NewSummarizationTimeout(err error) *SummarizationError {
	return &SummarizationError{Reason: "request timed out", Timeout: true, Err: err}
}

func (e *SummarizationError) Error() string {
	if e.Reason == "" {
		return ErrSummarization.Error()
	}
	return ErrSummarization.Error() + ": " + e.Reason
}

func (e *SummarizationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSummarization}
	}
	return []error{ErrSummarization, e.Err}
}

// ValidationError в запросе отсутствует или неверно обязательное поле
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError создаёт ошибку валидации
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
