package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/motion-bridge/internal/config"
	"github.com/BuzzLyutic/motion-bridge/internal/handler"
	"github.com/BuzzLyutic/motion-bridge/internal/motion"
	"github.com/BuzzLyutic/motion-bridge/internal/openai"
	"github.com/BuzzLyutic/motion-bridge/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Local development only; the hosting environment injects real values.
	_ = godotenv.Load()

	cfg := config.Load()

	ai := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	motionClient := motion.NewClient(motion.Config{
		APIKey:      cfg.MotionAPIKey,
		WorkspaceID: cfg.MotionWorkspaceID,
		BaseURL:     cfg.MotionBaseURL,
		MaxAttempts: cfg.RetryMaxAttempts,
	})
	taskService := service.NewTaskService(motionClient, logger)
	h := handler.NewHandler(ai, taskService, cfg, logger)

	srv := http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h.Routes(),
		ReadTimeout: 10 * time.Second,
		// Batches create tasks sequentially with retries, so writes get room.
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped")
}
