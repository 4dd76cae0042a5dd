package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dkpatel/salestrack/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(itemsHandler *handlers.ItemsHandler, exportHandler *handlers.ExportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/items", itemsHandler.List)
		api.POST("/items", itemsHandler.Create)
		api.POST("/items/bulk-delete", itemsHandler.BulkDelete)
		api.GET("/items/:uid", itemsHandler.Get)
		api.PATCH("/items/:uid", itemsHandler.Update)
		api.DELETE("/items/:uid", itemsHandler.Delete)
		api.POST("/export", exportHandler.Export)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

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
