package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"promptsep/internal/metrics"
	"promptsep/internal/model"
	"promptsep/pkg/llm"

	"github.com/gin-gonic/gin"
)

type SeparationSaver interface {
	Save(s *model.Separation) error
}

type SeparateHandler struct {
	separator     llm.Separator
	repository    SeparationSaver
	maxInputChars int
}

func NewSeparateHandler(separator llm.Separator, repository SeparationSaver, maxInputChars int) *SeparateHandler {
	return &SeparateHandler{
		separator:     separator,
		repository:    repository,
		maxInputChars: maxInputChars,
	}
}

type separateRequest struct {
	Text string `json:"text"`
}

func (h *SeparateHandler) Separate(c *gin.Context) {
	var req separateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	// Empty input never reaches the LLM.
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	if len(req.Text) > h.maxInputChars {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Text too long: %d characters (max %d)", len(req.Text), h.maxInputChars),
		})
		return
	}

	start := time.Now()
	result, err := h.separator.Separate(llm.SeparationInput{Text: req.Text})
	elapsed := time.Since(start)

	if err != nil {
		var parseErr *llm.ParseError
		if errors.As(err, &parseErr) {
			slog.Error("separation response in unexpected shape", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "The separation service responded, but in an unexpected shape",
				"code":  "unexpected_response",
			})
			return
		}

		slog.Error("separation request failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "The separation service could not be reached",
			"code":  "upstream_failure",
		})
		return
	}

	metrics.SeparationDuration.WithLabelValues(result.ModelUsed).Observe(elapsed.Seconds())
	metrics.InputChars.Observe(float64(len(req.Text)))

	separation := &model.Separation{
		InputText:     req.Text,
		Title:         result.Title,
		Prompt:        result.Prompt,
		Output:        result.Output,
		PromptVersion: result.PromptVersion,
		ModelUsed:     result.ModelUsed,
	}

	// A history write failure must not void a result the user is waiting on.
	if err := h.repository.Save(separation); err != nil {
		slog.Error("error saving separation to history", "error", err)
	}

	res := toSeparationResponse(separation)
	res.ElapsedMs = elapsed.Milliseconds()
	c.JSON(http.StatusOK, res)
}
