package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os/signal"
	"syscall"

	"dnd_quest_board/internal/repository"
	"dnd_quest_board/internal/service"
	"dnd_quest_board/pkg/logger"
	"go.uber.org/zap"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "questboard",
		Short:         "Quest board API and frontend server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), dir)
		},
	}
	root.PersistentFlags().StringVar(&dir, "config", configPath, "directory containing config.yaml")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), dir)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the quests table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), dir)
		},
	})

	return root
}

type app struct {
	cfg  *Config
	repo *repository.Repository
	log  *zap.Logger
}

func (a *app) close() {
	if err := a.repo.Close(); err != nil {
		a.log.Error("Failed to close repository", zap.Error(err))
	}
	_ = logger.Sync()
}

func bootstrap(dir string) (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		log.Error("Failed to initialize repository", zap.Error(err))
		return nil, err
	}

	return &app{cfg: cfg, repo: repo, log: log}, nil
}

func runMigrate(ctx context.Context, dir string) error {
	a, err := bootstrap(dir)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.repo.EnsureSchema(ctx); err != nil {
		a.log.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	a.log.Info("Database initialized successfully")

	return nil
}

func runServe(ctx context.Context, dir string) error {
	a, err := bootstrap(dir)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.repo.EnsureSchema(ctx); err != nil {
		a.log.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	a.log.Info("Database initialized successfully")

	questService := service.NewQuestService(a.repo)
	srv := &http.Server{
		Addr:    a.cfg.Server.Addr(),
		Handler: newRouter(a.cfg.Server, questService),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Starting server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Failed to shut down server", zap.Error(err))
		return err
	}
	a.log.Info("Server stopped")

	return nil
}
