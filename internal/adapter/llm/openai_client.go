package llm

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/plastinin/bizreport/internal/config"
	"github.com/plastinin/bizreport/internal/domain"
	"go.uber.org/zap"
)

const (
	openAIMaxOutputTokens int64 = 1024

	openAIInstructions = `You summarize business data for a non-technical reader.

Rules:
- 3 to 5 sentences of plain prose, no lists.
- Mention totals, trends and outliers with concrete numbers.
- Do not invent values that are not in the data.`
)

// OpenAIClient суммаризация через OpenAI Responses API
type OpenAIClient struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient создаёт новый экземпляр OpenAIClient.
// Встроенные повторы SDK отключены: один вызов означает один запрос.
func NewOpenAIClient(cfg config.SummarizerConfig, logger *zap.Logger) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithRequestTimeout(cfg.RequestTimeout),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  cfg.OpenAIModel,
		logger: logger,
	}
}

// Summarize отправляет текст модели и возвращает итоговый текст ответа
func (c *OpenAIClient) Summarize(ctx context.Context, text string) (string, error) {
	c.logger.Debug("Starting summarization",
		zap.String("model", c.model),
		zap.Int("input_length", len(text)),
	)

	startTime := time.Now()
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           openai.ChatModel(c.model),
		MaxOutputTokens: openai.Int(openAIMaxOutputTokens),
		Instructions:    openai.String(openAIInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		if isTimeout(err) {
			c.logger.Error("OpenAI summarization timed out",
				zap.Duration("duration", time.Since(startTime)),
				zap.Error(err),
			)
			return "", domain.NewSummarizationTimeout(err)
		}
		c.logger.Error("OpenAI summarization request failed", zap.Error(err))
		return "", domain.NewSummarizationError("failed to send request", err)
	}

	c.logger.Debug("OpenAI request completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.String("status", string(resp.Status)),
	)

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return "", domain.NewSummarizationError("unexpected response", nil)
	}
	return summary, nil
}
