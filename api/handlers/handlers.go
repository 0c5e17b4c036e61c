package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"snippet-bot/logger"
	"snippet-bot/models"
)

// RunLister reads recent pipeline run history.
type RunLister interface {
	ListRecent(ctx context.Context, limit int64) ([]models.Run, error)
}

// Runner executes one pipeline invocation.
type Runner interface {
	Run(ctx context.Context) error
}

// ListRunsHandler returns the most recent pipeline runs, newest first.
func ListRunsHandler(runs RunLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
		items, err := runs.ListRecent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// TriggerGenerateHandler starts one pipeline invocation in the background
// and answers immediately. The invocation carries its own deadline so it
// survives the HTTP request ending.
func TriggerGenerateHandler(p Runner, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := p.Run(ctx); err != nil {
				logger.Log.Errorf("manually triggered run failed: %v", err)
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
	}
}
