package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/marketconnect/riskmap-agent/app/internal/agent"
	"github.com/marketconnect/riskmap-agent/app/internal/config"
	"github.com/marketconnect/riskmap-agent/app/internal/handlers"
	"github.com/marketconnect/riskmap-agent/app/internal/repository"
	"github.com/marketconnect/riskmap-agent/app/internal/session"
)

const shutdownTimeout = 10 * time.Second

// App holds all application dependencies
type App struct {
	Config         *config.Config
	Repository     repository.Repository
	Asker          agent.Asker
	AgentInfo      agent.Info
	SessionManager *session.SessionManager
}

// NewApp creates and initializes all application dependencies
func NewApp(cfg *config.Config) (*App, error) {
	log.Info("initializing usage repository", "type", cfg.Repository.Type)
	repo, err := repository.New(cfg.Repository.Type, cfg.Repository.SQLiteDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}
	if err := repo.Init(); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	asker, info, err := agent.New(cfg)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	log.Info("agent ready", "provider", info.Provider, "model", info.Model)

	return &App{
		Config:         cfg,
		Repository:     repo,
		Asker:          asker,
		AgentInfo:      info,
		SessionManager: session.NewSessionManager(asker, repo),
	}, nil
}

// Close discards all sessions and closes the repository. Safe to call twice.
func (a *App) Close() error {
	if a.SessionManager == nil {
		return nil
	}
	sm := a.SessionManager
	a.SessionManager = nil
	if err := sm.Close(); err != nil {
		return fmt.Errorf("failed to close session manager: %w", err)
	}
	return nil
}

// Handler returns the HTTP surface of the application.
func (a *App) Handler() http.Handler {
	return handlers.NewRouter(a.SessionManager, a.AgentInfo)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.HTTP.Port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr)
		log.Info("available endpoints",
			"sessions", "/v1/sessions[/{id}[/questions]]",
			"stats", "/sessions/status[/{id}]",
			"catalog", "/v1/zones, /v1/agent")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
