package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/status-engine/internal/domain"
	"github.com/orgball2608/status-engine/internal/migrations"
	repositories "github.com/orgball2608/status-engine/internal/repositories/fx"
	"github.com/orgball2608/status-engine/internal/status"
	"github.com/orgball2608/status-engine/internal/status/statusimpl"
	"github.com/orgball2608/status-engine/pkg/config"
	"github.com/orgball2608/status-engine/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		clockwork.NewRealClock,
		localViewer,
	),
	repositories.Module,
	fx.Provide(
		fx.Annotate(
			statusimpl.New,
			fx.As(new(status.Client)),
		),
	),
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func localViewer(cfg *config.Config) domain.Viewer {
	return domain.Viewer{
		ID:        cfg.Viewer.ID,
		Name:      cfg.Viewer.Name,
		AvatarRef: cfg.Viewer.AvatarRef,
	}
}

func migrate(log logger.Logger, cfg *config.Config) error {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		return nil
	}
	if err := migrations.Up(context.Background(), cfg.GetDSN()); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info("Database migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, statusClient status.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: healthMux(log, statusClient),
	}

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			statusClient.Load(startCtx)

			if err := statusClient.SchedulePurge(ctx); err != nil {
				log.Error("Schedule status purge error", "error", err)
				return err
			}

			go startHttpServer(log, server)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			if err := server.Shutdown(stopCtx); err != nil {
				log.Error("Failed to shut down health server", "error", err)
			}
			return statusClient.Close(stopCtx)
		},
	})
}

func startHttpServer(log logger.Logger, server *http.Server) {
	log.Info(fmt.Sprintf("Starting server on %s", server.Addr))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("Server failed to start", "error", err)
	}
}

func healthMux(log logger.Logger, statusClient status.Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log, statusClient)
	})
	return mux
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger, statusClient status.Client) {
	logger.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	body := fmt.Sprintf("ok rings=%d", len(statusClient.CurrentRings()))
	if _, err := w.Write([]byte(body)); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}
