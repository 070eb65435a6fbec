package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limaJavier/classcomposer/pkg/service"
)

func NewRouter(schedules *service.ScheduleService, metrics *Metrics, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestId())
	router.Use(Logging(logger))
	router.Use(Instrument(metrics))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	handler := NewScheduleHandler(schedules, metrics, logger)
	api := router.Group("/api/v1")
	api.POST("/schedules", handler.Compose)

	return router
}
