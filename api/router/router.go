package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"snippet-bot/api/handlers"
)

// New builds the ops router: a health check plus the v1 run-history and
// manual-trigger endpoints.
func New(database *mongo.Database, runs handlers.RunLister, pipeline handlers.Runner, runTimeout time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		if err := database.RunCommand(c.Request.Context(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/runs", handlers.ListRunsHandler(runs))
		api.POST("/generate", handlers.TriggerGenerateHandler(pipeline, runTimeout))
	}

	return r
}
