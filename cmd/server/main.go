package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/wmachuca/localstack-studio/internal/config"
	"github.com/wmachuca/localstack-studio/internal/dynamo"
	"github.com/wmachuca/localstack-studio/internal/logging"
	"github.com/wmachuca/localstack-studio/internal/server"
	"github.com/wmachuca/localstack-studio/internal/sqs"
	"github.com/wmachuca/localstack-studio/internal/stream"
)

func setupConfig() *config.Config {
	// .env is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server, manager *stream.Manager) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		manager.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "endpoint", cfg.AWSEndpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		slog.Error("Failed to load AWS config", "error", err)
		os.Exit(1)
	}

	queueClient := sqs.NewClient(awsCfg, cfg.AWSEndpoint)
	tableClient := dynamo.NewClient(awsCfg, cfg.AWSEndpoint)

	manager := stream.NewManager(queueClient, stream.PollSettings{
		MaxMessages:       cfg.PollMaxMessages,
		WaitSeconds:       cfg.PollWaitSeconds,
		VisibilityTimeout: cfg.PollVisibilityTimeout,
		IdleDelay:         cfg.PollIdleDelay,
		ErrorBackoff:      cfg.PollErrorBackoff,
	}, cfg.MaxClientsPerQueue, clock)

	srv := server.NewServer(cfg, queueClient, tableClient, manager)

	done := runGracefulShutdown(srv, manager)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
