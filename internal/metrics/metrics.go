package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptsep_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// SeparationDuration tracks completion latency per model.
	SeparationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "promptsep_separation_duration_seconds",
		Help:    "Time spent on one separation call.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"model"})

	// InputChars tracks the distribution of input text lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "promptsep_input_chars",
		Help:    "Number of characters in separation input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000, 50000},
	})
)

// Middleware records request counts after the handler chain runs.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
