package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xavierca1/lead-intake/internal/entity"
)

type AcceptLeadUseCase struct {
	Repo         entity.LeadRepositoryInterface
	Notifier     Notifier
	Notification NotificationSettings
	Timeouts     Timeouts
	Logger       *slog.Logger
}

func NewAcceptLeadUseCase(
	repo entity.LeadRepositoryInterface,
	notifier Notifier,
	notification NotificationSettings,
	timeouts Timeouts,
	logger *slog.Logger,
) *AcceptLeadUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AcceptLeadUseCase{
		Repo:         repo,
		Notifier:     notifier,
		Notification: notification,
		Timeouts:     timeouts,
		Logger:       logger,
	}
}

// Execute accepts the lead, persists it and then notifies sales. The
// notification is best effort: its failure is logged and never returned.
func (uc *AcceptLeadUseCase) Execute(ctx context.Context, id int64) error {
	log := uc.Logger.With(slog.String("op", "accept_lead"), slog.Int64("lead_id", id))

	lead, err := findLead(ctx, uc.Repo, uc.Timeouts.store(), id)
	if err != nil {
		if !HasCode(err, CodeLeadNotFound) {
			log.ErrorContext(ctx, "load lead failed", slog.Any("error", err))
		}
		return err
	}

	if err := lead.Accept(); err != nil {
		log.ErrorContext(ctx, "accept rejected", slog.String("status", lead.Status.String()), slog.Any("error", err))
		return transitionError(err)
	}

	if err := saveLead(ctx, uc.Repo, uc.Timeouts.store(), lead); err != nil {
		log.ErrorContext(ctx, "save accepted lead failed", slog.Any("error", err))
		return err
	}

	log.InfoContext(ctx, "lead accepted", slog.String("price", lead.Price.String()))

	uc.notify(ctx, log, lead)
	return nil
}

func (uc *AcceptLeadUseCase) notify(ctx context.Context, log *slog.Logger, lead *entity.Lead) {
	if uc.Notifier == nil {
		return
	}

	nctx, cancel := withTimeout(ctx, uc.Timeouts.Notify)
	defer cancel()

	body := fmt.Sprintf("Lead %d has been accepted.", lead.ID)
	if err := uc.Notifier.Notify(nctx, uc.Notification.Recipient, uc.Notification.Subject, body); err != nil {
		nerr := &TechnicalError{
			Code:    CodeNotification,
			Message: fmt.Sprintf("could not notify acceptance of lead %d", lead.ID),
			Err:     err,
		}
		log.WarnContext(ctx, "failed to send acceptance notification", slog.Any("error", nerr))
	}
}
