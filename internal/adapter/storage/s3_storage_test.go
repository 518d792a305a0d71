package storage

import (
	"testing"
	"time"

	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagingLifecycle(t *testing.T) {
	cfg := stagingLifecycle(2)

	require.Len(t, cfg.Rules, 1)
	rule := cfg.Rules[0]
	assert.Equal(t, "Enabled", rule.Status)
	assert.Equal(t, "staging/", rule.RuleFilter.Prefix)
	assert.Equal(t, lifecycle.ExpirationDays(2), rule.Expiration.Days)
}

func TestStagingKey(t *testing.T) {
	now := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "plain", fileName: "sales.csv", want: "staging/2026/03/07/id-1/sales.csv"},
		{name: "spaces", fileName: "q1 report.csv", want: "staging/2026/03/07/id-1/q1_report.csv"},
		{name: "traversal", fileName: "../../etc/passwd", want: "staging/2026/03/07/id-1/passwd"},
		{name: "empty", fileName: "", want: "staging/2026/03/07/id-1/upload.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stagingKey(now, "id-1", tt.fileName))
		})
	}
}

func TestPutOptions(t *testing.T) {
	size, opts := putOptions("", 0)
	assert.Equal(t, int64(-1), size)
	assert.Equal(t, "text/csv", opts.ContentType)

	size, opts = putOptions("text/plain", -5)
	assert.Equal(t, int64(-1), size)
	assert.Equal(t, "text/plain", opts.ContentType)

	size, opts = putOptions("application/csv", 128)
	assert.Equal(t, int64(128), size)
	assert.Equal(t, "application/csv", opts.ContentType)
}
