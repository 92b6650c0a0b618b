package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StockPulse/internal/handler/ws"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/usecase"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"
)

// App encapsulates the application lifecycle: the HTTP server, the overview
// broadcast hub, and the cache maintenance loop.
type App struct {
	cfg         *config.Config
	l           *applogger.Logger
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	hub         *ws.Hub
	maint       *usecase.Maintenance
	chClient    *pkgch.Client
	publisher   domrepo.Publisher
}

// New creates the App with all dependencies injected.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpHandler xhttp.Handler,
	hub *ws.Hub,
	maint *usecase.Maintenance,
	chClient *pkgch.Client,
	publisher domrepo.Publisher,
) *App {
	return &App{
		cfg:         cfg,
		l:           l,
		httpHandler: httpHandler,
		hub:         hub,
		maint:       maint,
		chClient:    chClient,
		publisher:   publisher,
	}
}

// Run starts all components and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	go a.maint.Run(ctx)
	a.l.Info("maintenance loop started",
		applogger.String("interval", a.cfg.Maintenance.PurgeInterval.String()),
		applogger.String("retention", a.cfg.Maintenance.Retention.String()),
	)

	go a.hub.Run(ctx)
	a.l.Info("overview broadcaster started",
		applogger.String("interval", a.cfg.Market.UpdateInterval.String()))

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	cancel()
	return a.shutdown(context.Background())
}

func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.l.Warn("publisher close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
