package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestLogger(logger))
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	importController := NewImportController(cfg.Importer, cfg.Runs, cfg.Tasks, cfg.DefaultOptions, logger)
	decksController := NewDecksController(cfg.Decks, cfg.Importer, logger)
	tasksController := NewTasksController(cfg.Tasks, logger)

	router.GET("/health", health.Status)

	api := router.Group("/api")
	{
		api.POST("/import", importController.Import)
		api.POST("/import/async", importController.ImportAsync)
		api.GET("/import/progress", importController.Progress)

		api.GET("/decks", decksController.List)
		api.DELETE("/decks", decksController.DeleteAll)
		api.POST("/decks/match", decksController.Match)

		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}

// requestLogger logs every request at debug level.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()))
	}
}
