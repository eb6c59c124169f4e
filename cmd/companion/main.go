package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ai-persona-chat/client/pkg/config"
	"ai-persona-chat/client/pkg/di"
	"ai-persona-chat/client/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found")
	}

	cfg := config.New()

	// Initialize structured logger
	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format == "json"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("starting persona chat client", "api", cfg.API.BaseURL, "data_dir", cfg.Storage.DataDir)

	container, err := di.New(cfg, log)
	if err != nil {
		log.LogError(err, "failed to initialize client")
		os.Exit(1)
	}
	defer container.Close()

	// Close the store cleanly on interrupt; badger replays unflushed
	// writes otherwise, but a clean close avoids the replay.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container.Terminal.Run(ctx, container.Session)
	log.Info("goodbye")
}
