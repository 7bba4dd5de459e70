package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"promptsep/internal/model"

	"github.com/gin-gonic/gin"
)

type HistoryStore interface {
	GetHistory(limit, offset int) ([]model.Separation, error)
	GetHistoryTotal() (int, error)
	ClearHistory() error
}

type HistoryHandler struct {
	repository HistoryStore
}

func NewHistoryHandler(repository HistoryStore) *HistoryHandler {
	return &HistoryHandler{repository: repository}
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	separations, err := h.repository.GetHistory(limit, offset)
	if err != nil {
		slog.Error("error fetching history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetHistoryTotal()
	if err != nil {
		slog.Error("error fetching history total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := HistoryResponse{
		Items:  []SeparationResponse{},
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}

	for _, s := range separations {
		sep := s
		res.Items = append(res.Items, toSeparationResponse(&sep))
	}

	c.JSON(http.StatusOK, res)
}

func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	if err := h.repository.ClearHistory(); err != nil {
		slog.Error("error clearing history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HistoryHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetHistoryTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}
