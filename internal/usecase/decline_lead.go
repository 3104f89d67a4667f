package usecase

import (
	"context"
	"log/slog"

	"github.com/xavierca1/lead-intake/internal/entity"
)

type DeclineLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Timeouts Timeouts
	Logger   *slog.Logger
}

func NewDeclineLeadUseCase(repo entity.LeadRepositoryInterface, timeouts Timeouts, logger *slog.Logger) *DeclineLeadUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeclineLeadUseCase{Repo: repo, Timeouts: timeouts, Logger: logger}
}

// Execute declines the lead. Nobody is notified.
func (uc *DeclineLeadUseCase) Execute(ctx context.Context, id int64) error {
	log := uc.Logger.With(slog.String("op", "decline_lead"), slog.Int64("lead_id", id))

	lead, err := findLead(ctx, uc.Repo, uc.Timeouts.store(), id)
	if err != nil {
		if !HasCode(err, CodeLeadNotFound) {
			log.ErrorContext(ctx, "load lead failed", slog.Any("error", err))
		}
		return err
	}

	if err := lead.Decline(); err != nil {
		log.ErrorContext(ctx, "decline rejected", slog.String("status", lead.Status.String()), slog.Any("error", err))
		return transitionError(err)
	}

	if err := saveLead(ctx, uc.Repo, uc.Timeouts.store(), lead); err != nil {
		log.ErrorContext(ctx, "save declined lead failed", slog.Any("error", err))
		return err
	}

	log.InfoContext(ctx, "lead declined")
	return nil
}
