package domain

import (
	"path/filepath"
	"strings"
)

// MissingTextMessage текст ошибки для /summarize-text без поля text
const MissingTextMessage = "Missing 'text' in request body"

// Расширения, которые считаем CSV
var csvExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// MIME типы, под которыми браузеры отправляют CSV
var csvContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true,
	"application/vnd.ms-excel": true,
}

// ValidateUpload проверяет, похож ли загруженный файл на CSV
func ValidateUpload(fileName, contentType string) error {
	if csvExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return nil
	}

	// Убираем параметры типа charset
	ct := strings.Split(contentType, ";")[0]
	ct = strings.TrimSpace(strings.ToLower(ct))
	if csvContentTypes[ct] {
		return nil
	}

	return NewValidationError("file", "Unsupported file type, expected a CSV file")
}

// SanitizeFileName оставляет от имени файла только безопасную базовую часть
func SanitizeFileName(fileName string) string {
	name := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)

	if name == "" || name == "." || name == ".." || name == "/" {
		return "upload.csv"
	}
	return name
}
