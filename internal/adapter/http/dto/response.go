package dto

// Коды ошибок в ответах API
const (
	CodeValidation    = "validation_error"
	CodeParse         = "parse_error"
	CodeSummarization = "summarization_error"
	CodeTimeout       = "summarization_timeout"
	CodeInternal      = "internal_error"
)

// ErrorResponse ответ с ошибкой.
// Error содержит человекочитаемое сообщение, Code задаёт вид ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewErrorResponse создаёт ответ с ошибкой
func NewErrorResponse(message string, code string) *ErrorResponse {
	return &ErrorResponse{
		Error: message,
		Code:  code,
	}
}
