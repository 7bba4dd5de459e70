package model

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Separation struct {
	ID            int64
	InputText     string
	Title         string
	Prompt        string
	Output        string
	PromptVersion string
	ModelUsed     string
	CreatedAt     time.Time
}

type BatchJob struct {
	ID         int64
	Filename   string
	ColumnName string
	TotalItems int
	CreatedAt  time.Time
}

type BatchItem struct {
	ID           int64
	JobID        int64
	RowIndex     int
	InputText    string
	Title        string
	Prompt       string
	Output       string
	Status       string
	ErrorMessage string
	AttemptCount int
	ModelUsed    string
	CreatedAt    time.Time
}
