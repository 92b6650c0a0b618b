package usecase

import (
	"context"
	"time"

	domrepo "StockPulse/internal/domain/repository"
	applogger "StockPulse/pkg/logger"
)

// MaintenanceConfig tunes the background purge loop.
type MaintenanceConfig struct {
	PurgeInterval time.Duration
	Retention     time.Duration
}

// Maintenance drops cache rows past the retention window on a fixed
// schedule. Reads never see partially deleted batches because the store
// serves only rows fresher than the per-kind TTL anyway.
type Maintenance struct {
	store domrepo.CacheStore
	l     *applogger.Logger
	cfg   MaintenanceConfig
}

func NewMaintenance(store domrepo.CacheStore, l *applogger.Logger, cfg MaintenanceConfig) *Maintenance {
	return &Maintenance{store: store, l: l, cfg: cfg}
}

// Run blocks until ctx is done, purging once per interval. One purge runs
// immediately on start so restarts do not postpone cleanup.
func (m *Maintenance) Run(ctx context.Context) {
	m.purge(ctx)

	ticker := time.NewTicker(m.cfg.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.purge(ctx)
		}
	}
}

func (m *Maintenance) purge(ctx context.Context) {
	if err := m.store.Purge(ctx, m.cfg.Retention); err != nil {
		m.l.Error("cache purge failed", applogger.Error(err))
		return
	}
	m.l.Info("cache purge completed",
		applogger.String("retention", m.cfg.Retention.String()))
}
