package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xavierca1/lead-intake/internal/entity"
)

type ListLeadsUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Timeouts Timeouts
	Logger   *slog.Logger
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface, timeouts Timeouts, logger *slog.Logger) *ListLeadsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListLeadsUseCase{Repo: repo, Timeouts: timeouts, Logger: logger}
}

// Execute returns every lead whose stored status equals status exactly.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, status string) ([]*entity.Lead, error) {
	st, err := entity.ParseLeadStatus(status)
	if err != nil {
		return nil, &DomainError{
			Code:    CodeInvalidStatus,
			Message: fmt.Sprintf("status %q is not a lead status", status),
			Err:     err,
		}
	}

	sctx, cancel := withTimeout(ctx, uc.Timeouts.Store)
	defer cancel()

	leads, err := uc.Repo.FindByStatus(sctx, st)
	if err != nil {
		uc.Logger.ErrorContext(ctx, "list leads failed",
			slog.String("op", "list_leads"),
			slog.String("status", st.String()),
			slog.Any("error", err),
		)
		return nil, &TechnicalError{
			Code:    CodePersistence,
			Message: fmt.Sprintf("could not list %s leads", st),
			Err:     err,
		}
	}
	return leads, nil
}
