package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/dwilkie/tropo-message/internal/app"
	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/handler"
	"github.com/dwilkie/tropo-message/internal/logging"
)

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		if err := runLambda(); err != nil {
			os.Exit(1)
		}
	} else {
		if err := runLocal(); err != nil {
			os.Exit(1)
		}
	}
}

// runLambda builds the application once per cold start and serves API
// Gateway proxy events with it.
func runLambda() error {
	logger := logging.New(logging.DefaultConfig())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	application, err := app.New(context.Background(), app.Options{Config: cfg, Logger: logger})
	if err != nil {
		logger.Error("failed to initialise application", "error", err)
		return err
	}
	defer application.Close()

	lambda.Start(application.API.Handle)
	return nil
}

func runLocal() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logging.New(logging.DefaultConfig())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	application, err := app.New(ctx, app.Options{Config: cfg, Logger: logger})
	if err != nil {
		logger.Error("failed to initialise application", "error", err)
		return err
	}
	defer application.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.NewRouter(application.API, cfg.Server.MaxBodyBytes),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("webhook server starting",
		"addr", cfg.Server.Addr,
		"journal", cfg.Redis.Enabled(),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
