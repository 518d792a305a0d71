package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/plastinin/bizreport/internal/domain"
)

const reportPromptPreamble = "Summarize this business data:\n"

// BuildReportPrompt формирует промпт: преамбула + набор в виде JSON с отступами
func BuildReportPrompt(ds *domain.Dataset) (string, error) {
	if ds == nil {
		ds = domain.NewDataset(nil)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize dataset: %w", err)
	}

	return reportPromptPreamble + string(data), nil
}
