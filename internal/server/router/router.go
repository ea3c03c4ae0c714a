package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. The indexHTML
// payload is the embedded dashboard page served from the root path.
func New(trackerHandler *handlers.TrackerHandler, blogHandler *handlers.BlogHandler, indexHTML []byte, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/dashboard", trackerHandler.Dashboard)
	api.GET("/foods", trackerHandler.ListFoods)
	api.POST("/foods", trackerHandler.CreateFood)
	api.POST("/logs/food", trackerHandler.LogFood)
	api.DELETE("/logs/food/:id", trackerHandler.RemoveEntry)
	api.POST("/logs/weight", trackerHandler.LogWeight)
	api.POST("/logs/target", trackerHandler.SetProteinTarget)
	api.GET("/analytics/trend", trackerHandler.Trend)
	api.POST("/blog/run", blogHandler.Run)

	if len(indexHTML) > 0 {
		r.GET("/", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
		})
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
