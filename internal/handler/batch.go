package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"promptsep/internal/model"

	"github.com/gin-gonic/gin"
)

type BatchStore interface {
	CreateJob(job *model.BatchJob, texts []string) ([]int64, error)
	GetJob(id int64) (*model.BatchJob, error)
	GetItemsByJobID(jobID int64) ([]model.BatchItem, error)
}

type BatchQueue interface {
	Enqueue(itemID int64) error
}

type BatchHandler struct {
	repository BatchStore
	queue      BatchQueue
	maxRows    int
}

func NewBatchHandler(repository BatchStore, queue BatchQueue, maxRows int) *BatchHandler {
	return &BatchHandler{
		repository: repository,
		queue:      queue,
		maxRows:    maxRows,
	}
}

func (h *BatchHandler) CreateBatch(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file upload is required"})
		return
	}
	defer file.Close()

	column := c.PostForm("column")
	if column == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The column field is required"})
		return
	}

	texts, err := readCSVColumn(file, column, h.maxRows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := &model.BatchJob{
		Filename:   header.Filename,
		ColumnName: column,
		TotalItems: len(texts),
	}

	itemIDs, err := h.repository.CreateJob(job, texts)
	if err != nil {
		slog.Error("error creating batch job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	enqueued := 0
	for _, id := range itemIDs {
		if err := h.queue.Enqueue(id); err != nil {
			slog.Error("error enqueueing batch item", "item_id", id, "error", err)
			continue
		}
		enqueued++
	}

	// Items that never reached the queue stay pending with nothing to pick
	// them up; the count lets the client spot them and resubmit those rows.
	c.JSON(http.StatusAccepted, gin.H{
		"job_id":      job.ID,
		"total_items": job.TotalItems,
		"enqueued":    enqueued,
	})
}

func (h *BatchHandler) GetBatch(c *gin.Context) {
	job, items, ok := h.loadJob(c)
	if !ok {
		return
	}

	res := BatchJobResponse{
		ID:         job.ID,
		Filename:   job.Filename,
		ColumnName: job.ColumnName,
		TotalItems: job.TotalItems,
		CreatedAt:  job.CreatedAt.Format(time.RFC3339),
		Items:      []BatchItemResponse{},
	}

	for _, item := range items {
		switch item.Status {
		case model.StatusCompleted:
			res.Completed++
		case model.StatusFailed:
			res.Failed++
		}
		res.Items = append(res.Items, toBatchItemResponse(item))
	}

	c.JSON(http.StatusOK, res)
}

func (h *BatchHandler) DownloadBatch(c *gin.Context) {
	job, items, ok := h.loadJob(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "processed_"+job.Filename))

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"Title", "Prompt", "Output"})
	for _, item := range items {
		if item.Status != model.StatusCompleted {
			continue
		}
		w.Write([]string{item.Title, item.Prompt, item.Output})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		slog.Error("error writing batch CSV", "job_id", job.ID, "error", err)
	}
}

func (h *BatchHandler) loadJob(c *gin.Context) (*model.BatchJob, []model.BatchItem, bool) {
	id := c.Param("id")

	jobID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid batch job id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch job id"})
		return nil, nil, false
	}

	job, err := h.repository.GetJob(jobID)
	if err != nil {
		slog.Error("error fetching batch job", "error", err, "job_id", jobID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, nil, false
	}

	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Batch job not found"})
		return nil, nil, false
	}

	items, err := h.repository.GetItemsByJobID(jobID)
	if err != nil {
		slog.Error("error fetching batch items", "error", err, "job_id", jobID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, nil, false
	}

	return job, items, true
}

// readCSVColumn extracts the named column from a CSV stream. The first
// record is the header. Rows whose cell is blank are skipped.
func readCSVColumn(r io.Reader, column string, maxRows int) ([]string, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV header: %w", err)
	}

	colIdx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			colIdx = i
			break
		}
	}
	if colIdx == -1 {
		return nil, fmt.Errorf("column %q not found in CSV header", column)
	}

	var texts []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read CSV row: %w", err)
		}

		if colIdx >= len(record) {
			continue
		}

		text := record[colIdx]
		if strings.TrimSpace(text) == "" {
			continue
		}

		texts = append(texts, text)
		if len(texts) > maxRows {
			return nil, fmt.Errorf("too many rows: max %d per batch", maxRows)
		}
	}

	if len(texts) == 0 {
		return nil, fmt.Errorf("column %q has no non-empty rows", column)
	}

	return texts, nil
}
