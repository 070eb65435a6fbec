package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/limaJavier/classcomposer/pkg/config"
	"github.com/limaJavier/classcomposer/pkg/logger"
	"github.com/limaJavier/classcomposer/pkg/server"
	"github.com/limaJavier/classcomposer/pkg/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	schedules := service.NewScheduleService(validator.New(), logr, cfg.Composer)
	router := server.NewRouter(schedules, server.NewMetrics(), logr)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("composer_mode", cfg.Composer.Mode),
	)
	if err := router.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
