package main

import (
	"MindWellGo/config"
	"MindWellGo/middleware"
	"MindWellGo/routes"
	"MindWellGo/services"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmc/langchaingo/llms"
	_ "go.uber.org/automaxprocs"
)

func main() {
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := config.InitLogger(conf); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer config.Logger.Sync()

	if err := config.InitDB(conf); err != nil {
		config.Logger.Fatalw("failed to init database", "error", err)
	}

	ctx := context.Background()
	if err := config.InitRedis(ctx, conf); err != nil {
		config.Logger.Fatalw("failed to init redis", "error", err)
	}

	var model llms.Model
	model, err = services.NewLLMClient(conf.LLMAPIKey, conf.LLMAPIEndpoint, conf.LLMModel)
	if err != nil {
		if !errors.Is(err, services.ErrLLMNotConfigured) {
			config.Logger.Fatalw("failed to init text generation client", "error", err)
		}
		config.Logger.Warnw("LLM_API_KEY not set, recommendations will use the rule-based fallback")
		model = nil
	}

	if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r)
	routes.RegisterRoutes(r, conf, config.DB, model, config.RedisClient)

	srv := &http.Server{
		Addr:              ":" + conf.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infow("starting server", "port", conf.ServerPort, "environment", conf.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Errorw("server shutdown failed", "error", err)
	}

	if config.RedisClient != nil {
		_ = config.RedisClient.Close()
	}
	if sqlDB, err := config.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	config.Logger.Infow("server stopped")
}
