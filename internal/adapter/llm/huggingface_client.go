package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/plastinin/bizreport/internal/config"
	"github.com/plastinin/bizreport/internal/domain"
	"go.uber.org/zap"
)

// Сколько тела ошибочного ответа попадает в лог
const maxErrorBodyLog = 512

// HuggingFaceClient клиент для Hugging Face Inference API
type HuggingFaceClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	logger     *zap.Logger
}

// NewHuggingFaceClient создаёт новый экземпляр HuggingFaceClient
func NewHuggingFaceClient(cfg config.SummarizerConfig, logger *zap.Logger) *HuggingFaceClient {
	return &HuggingFaceClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.Model,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		logger:   logger,
	}
}

// hfRequest структура запроса к Inference API
type hfRequest struct {
	Inputs string `json:"inputs"`
}

// hfSummary элемент успешного ответа
type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

// hfError тело ответа с ошибкой, например {"error":"Model is loading"}
type hfError struct {
	Error string `json:"error"`
}

// Summarize отправляет текст модели и возвращает summary_text первого элемента
func (c *HuggingFaceClient) Summarize(ctx context.Context, text string) (string, error) {
	c.logger.Debug("Starting summarization",
		zap.String("model", c.model),
		zap.Int("input_length", len(text)),
	)

	reqJSON, err := json.Marshal(hfRequest{Inputs: text})
	if err != nil {
		return "", domain.NewSummarizationError("failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqJSON))
	if err != nil {
		return "", domain.NewSummarizationError("failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Error("HF summarization timed out",
				zap.Duration("duration", time.Since(startTime)),
				zap.Error(err),
			)
			return "", domain.NewSummarizationTimeout(err)
		}
		c.logger.Error("HF summarization request failed", zap.Error(err))
		return "", domain.NewSummarizationError("failed to send request", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("HF request completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("status_code", resp.StatusCode),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", domain.NewSummarizationTimeout(err)
		}
		return "", domain.NewSummarizationError("failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("HF returned error status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", truncate(string(body), maxErrorBodyLog)),
		)

		var apiErr hfError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return "", domain.NewSummarizationError(
				fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, apiErr.Error), nil)
		}
		return "", domain.NewSummarizationError(fmt.Sprintf("provider returned status %d", resp.StatusCode), nil)
	}

	summary, err := parseSummary(body)
	if err != nil {
		c.logger.Error("Unexpected HF response",
			zap.String("body", truncate(string(body), maxErrorBodyLog)),
		)
		return "", err
	}

	return summary, nil
}

// parseSummary ожидает массив хотя бы из одного элемента с непустым summary_text
func parseSummary(body []byte) (string, error) {
	var result []hfSummary
	if err := json.Unmarshal(body, &result); err != nil {
		return "", domain.NewSummarizationError("unexpected response", err)
	}
	if len(result) == 0 || result[0].SummaryText == "" {
		return "", domain.NewSummarizationError("unexpected response", nil)
	}
	return result[0].SummaryText, nil
}

// CheckHealth проверяет доступность модели
func (c *HuggingFaceClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Hugging Face: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hugging face health check failed with status: %d", resp.StatusCode)
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
