package handler

import (
	"encoding/json"
	"net/http"
)

// LivenessMessage текст ответа GET /
const LivenessMessage = "Business Report AI Backend is running."

// HealthHandler обработчик health check запросов
type HealthHandler struct {
	provider string
	staging  string
}

// NewHealthHandler создаёт новый HealthHandler
func NewHealthHandler(provider, staging string) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		staging:  staging,
	}
}

// HealthResponse ответ health check
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Staging  string `json:"staging"`
}

// Root сообщает, что бэкенд запущен
// GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(LivenessMessage))
}

// Check проверяет состояние сервиса
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:   "ok",
		Provider: h.provider,
		Staging:  h.staging,
	})
}
