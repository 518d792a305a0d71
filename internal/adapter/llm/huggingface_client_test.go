package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plastinin/bizreport/internal/config"
	"github.com/plastinin/bizreport/internal/domain"
)

const testModel = "philschmid/bart-large-cnn-samsum"

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *HuggingFaceClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHuggingFaceClient(config.SummarizerConfig{
		APIKey:         "hf_test",
		Model:          testModel,
		BaseURL:        srv.URL + "/models/",
		RequestTimeout: timeout,
	}, zap.NewNop())
}

func TestHuggingFaceClient_Summarize(t *testing.T) {
	var gotBody map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/"+testModel, r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"summary_text":"Two companies reported total revenue of 3000."},{"summary_text":"ignored"}]`))
	}, time.Second)

	summary, err := client.Summarize(context.Background(), "Summarize this business data")
	require.NoError(t, err)

	assert.Equal(t, "Two companies reported total revenue of 3000.", summary)
	assert.Equal(t, map[string]string{"inputs": "Summarize this business data"}, gotBody)
}

func TestHuggingFaceClient_UnexpectedShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty array", body: `[]`},
		{name: "object instead of array", body: `{"summary_text":"x"}`},
		{name: "missing field", body: `[{"generated_text":"x"}]`},
		{name: "empty summary", body: `[{"summary_text":""}]`},
		{name: "not json", body: `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}, time.Second)

			_, err := client.Summarize(context.Background(), "text")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSummarization)
			assert.Equal(t, "summarization failed: unexpected response", err.Error())
		})
	}
}

func TestHuggingFaceClient_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model philschmid/bart-large-cnn-samsum is currently loading","estimated_time":20}`))
	}, time.Second)

	_, err := client.Summarize(context.Background(), "text")
	require.Error(t, err)

	var sumErr *domain.SummarizationError
	require.ErrorAs(t, err, &sumErr)
	assert.False(t, sumErr.Timeout)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "currently loading")
}

func TestHuggingFaceClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, time.Second)

	_, err := client.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSummarization)
	assert.Equal(t, "summarization failed: provider returned status 401", err.Error())
}

func TestHuggingFaceClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	_, err := client.Summarize(context.Background(), "text")
	require.Error(t, err)

	var sumErr *domain.SummarizationError
	require.ErrorAs(t, err, &sumErr)
	assert.True(t, sumErr.Timeout)
	assert.ErrorIs(t, err, domain.ErrSummarization)
}

func TestHuggingFaceClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewHuggingFaceClient(config.SummarizerConfig{
		Model:          testModel,
		BaseURL:        url,
		RequestTimeout: time.Second,
	}, zap.NewNop())

	_, err := client.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSummarization)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestHuggingFaceClient_CheckHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
	}, time.Second)

	assert.NoError(t, client.CheckHealth(context.Background()))
}
