package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HF_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, ProviderHuggingFace, cfg.Summarizer.Provider)
	assert.Equal(t, "philschmid/bart-large-cnn-samsum", cfg.Summarizer.Model)
	assert.Equal(t, 60*time.Second, cfg.Summarizer.RequestTimeout)
	assert.Equal(t, StagingLocal, cfg.Staging.Backend)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Frontend.Enabled)
}

func TestLoad_MissingAPIKeyIsNotAnError(t *testing.T) {
	t.Setenv("HF_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Summarizer.APIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("HF_API_KEY", "hf_secret")
	t.Setenv("SUMMARIZER_REQUEST_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "hf_secret", cfg.Summarizer.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Summarizer.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "provider", key: "SUMMARIZER_PROVIDER", value: "llama"},
		{name: "staging", key: "STAGING_BACKEND", value: "ftp"},
		{name: "timeout", key: "SUMMARIZER_REQUEST_TIMEOUT", value: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
