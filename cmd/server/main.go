// Command server runs the interview simulator API: it provisions the
// interviewer and validator assistants, then serves interview sessions,
// portfolio validation and speech conversion over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vivasim/viva-api/internal/api"
	"github.com/vivasim/viva-api/internal/assistant"
	"github.com/vivasim/viva-api/internal/async"
	"github.com/vivasim/viva-api/internal/audio"
	"github.com/vivasim/viva-api/internal/config"
	"github.com/vivasim/viva-api/internal/platform/logger"
	platformopenai "github.com/vivasim/viva-api/internal/platform/openai"
	"github.com/vivasim/viva-api/internal/portfolio"
	"github.com/vivasim/viva-api/internal/session"
)

const (
	startupTimeout  = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"model", cfg.OpenAI.Model,
		"workers", cfg.Execution.WorkerCount)

	pool := async.NewPool(async.PoolConfig{
		WorkerCount: cfg.Execution.WorkerCount,
		QueueSize:   cfg.Execution.QueueSize,
	}, log)
	defer pool.Shutdown(true)

	policy := async.NewLinearPolicy(
		cfg.Execution.MaxRequestRetries,
		time.Duration(cfg.Execution.BaseTimeoutSeconds)*time.Second,
	)
	executor := async.NewExecutor(pool, policy, log)

	client, err := platformopenai.NewFromAPIKey(cfg.OpenAI.APIKey, executor, log)
	if err != nil {
		return fmt.Errorf("failed to create assistant client: %w", err)
	}

	manager, err := assistant.NewManager(client, assistant.ManagerConfig{
		ConfigFile: cfg.OpenAI.AssistantConfigFile,
		Model:      cfg.OpenAI.Model,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create assistant manager: %w", err)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStartup()
	if err := manager.Ensure(startupCtx); err != nil {
		return fmt.Errorf("failed to provision assistants: %w", err)
	}

	poller := assistant.NewRunPoller(client, assistant.PollConfig{
		MaxRunRetries: cfg.Execution.MaxRunRetries,
		RunTimeout:    time.Duration(cfg.Execution.RunTimeoutSeconds) * time.Second,
		PollInterval:  time.Duration(cfg.Execution.PollIntervalSeconds) * time.Second,
	}, log)

	cache, err := portfolio.NewCache(
		cfg.Cache.Dir,
		time.Duration(cfg.Cache.MaxAgeDays)*24*time.Hour,
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to open portfolio cache: %w", err)
	}

	portfolioSvc, err := portfolio.NewService(client, poller, manager.Validator().ID, cache, log)
	if err != nil {
		return fmt.Errorf("failed to create portfolio service: %w", err)
	}

	sessionSvc, err := session.NewService(client, poller, session.Config{
		InterviewerID:   manager.Interviewer().ID,
		MinQuestions:    cfg.Interview.MinQuestions,
		MaxQuestions:    cfg.Interview.MaxQuestions,
		DefaultLanguage: cfg.Interview.DefaultLanguage,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}

	audioSvc, err := audio.NewService(client, log)
	if err != nil {
		return fmt.Errorf("failed to create audio service: %w", err)
	}

	router := api.NewRouter(api.RouterDeps{
		Sessions:   sessionSvc,
		Portfolios: portfolioSvc,
		Audio:      audioSvc,
		Logger:     log,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	// End every poll session first so no handler keeps waiting on a run
	// while the listener drains.
	poller.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	portfolioSvc.Cleanup()
	log.Info("server stopped")
	return nil
}
