package handler

import (
	"time"

	"promptsep/internal/model"
	"promptsep/pkg/textstat"
)

type SeparationResponse struct {
	ID          int64          `json:"id,omitempty"`
	Title       string         `json:"title"`
	Prompt      string         `json:"prompt"`
	Output      string         `json:"output"`
	PromptStats textstat.Stats `json:"prompt_stats"`
	OutputStats textstat.Stats `json:"output_stats"`
	ModelUsed   string         `json:"model_used"`
	ElapsedMs   int64          `json:"elapsed_ms,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
}

func toSeparationResponse(s *model.Separation) SeparationResponse {
	res := SeparationResponse{
		ID:          s.ID,
		Title:       s.Title,
		Prompt:      s.Prompt,
		Output:      s.Output,
		PromptStats: textstat.Count(s.Prompt),
		OutputStats: textstat.Count(s.Output),
		ModelUsed:   s.ModelUsed,
	}
	if !s.CreatedAt.IsZero() {
		res.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return res
}

type HistoryResponse struct {
	Items  []SeparationResponse `json:"items"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

type BatchItemResponse struct {
	ID           int64  `json:"id"`
	RowIndex     int    `json:"row_index"`
	Status       string `json:"status"`
	Title        string `json:"title"`
	Prompt       string `json:"prompt"`
	Output       string `json:"output"`
	ErrorMessage string `json:"error_message,omitempty"`
	AttemptCount int    `json:"attempt_count"`
	ModelUsed    string `json:"model_used,omitempty"`
}

func toBatchItemResponse(item model.BatchItem) BatchItemResponse {
	return BatchItemResponse{
		ID:           item.ID,
		RowIndex:     item.RowIndex,
		Status:       item.Status,
		Title:        item.Title,
		Prompt:       item.Prompt,
		Output:       item.Output,
		ErrorMessage: item.ErrorMessage,
		AttemptCount: item.AttemptCount,
		ModelUsed:    item.ModelUsed,
	}
}

type BatchJobResponse struct {
	ID         int64               `json:"id"`
	Filename   string              `json:"filename"`
	ColumnName string              `json:"column_name"`
	TotalItems int                 `json:"total_items"`
	Completed  int                 `json:"completed"`
	Failed     int                 `json:"failed"`
	CreatedAt  string              `json:"created_at"`
	Items      []BatchItemResponse `json:"items"`
}
