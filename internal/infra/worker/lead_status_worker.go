package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/metrics"
)

// LeadStatusWorker periodically publishes how many leads sit in each status.
type LeadStatusWorker struct {
	repo         entity.LeadRepositoryInterface
	tickInterval time.Duration
	logger       *slog.Logger
	report       func(status string, n int)
}

func NewLeadStatusWorker(repo entity.LeadRepositoryInterface, interval time.Duration, logger *slog.Logger) *LeadStatusWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadStatusWorker{
		repo:         repo,
		tickInterval: interval,
		logger:       logger,
		report:       metrics.SetLeadsByStatus,
	}
}

// Start blocks until ctx is done.
func (w *LeadStatusWorker) Start(ctx context.Context) {
	w.logger.Info("lead status worker started", slog.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.countLeads(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("lead status worker stopped")
			return
		case <-ticker.C:
			w.countLeads(ctx)
		}
	}
}

func (w *LeadStatusWorker) countLeads(ctx context.Context) {
	for _, status := range entity.AllStatuses() {
		leads, err := w.repo.FindByStatus(ctx, status)
		if err != nil {
			w.logger.Warn("count leads failed", slog.String("status", status.String()), slog.Any("error", err))
			continue
		}
		w.report(status.String(), len(leads))
	}
}
