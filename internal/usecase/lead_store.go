package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// findLead is shared by accept and decline.
func findLead(ctx context.Context, repo entity.LeadRepositoryInterface, timeout timeoutFunc, id int64) (*entity.Lead, error) {
	sctx, cancel := timeout(ctx)
	defer cancel()

	lead, err := repo.FindByID(sctx, id)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistence,
			Message: fmt.Sprintf("could not load lead %d", id),
			Err:     err,
		}
	}
	if lead == nil {
		return nil, &DomainError{
			Code:    CodeLeadNotFound,
			Message: fmt.Sprintf("Lead with ID %d not found", id),
			Err:     entity.ErrLeadNotFound,
		}
	}
	return lead, nil
}

func saveLead(ctx context.Context, repo entity.LeadRepositoryInterface, timeout timeoutFunc, lead *entity.Lead) error {
	sctx, cancel := timeout(ctx)
	defer cancel()

	err := repo.Save(sctx, lead)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrLeadConflict):
		return &DomainError{
			Code:    CodeConflict,
			Message: fmt.Sprintf("lead %d was changed by another request", lead.ID),
			Err:     err,
		}
	case errors.Is(err, entity.ErrLeadNotFound):
		return &DomainError{
			Code:    CodeLeadNotFound,
			Message: fmt.Sprintf("Lead with ID %d not found", lead.ID),
			Err:     err,
		}
	default:
		return &TechnicalError{
			Code:    CodePersistence,
			Message: fmt.Sprintf("could not save lead %d", lead.ID),
			Err:     err,
		}
	}
}

type timeoutFunc func(context.Context) (context.Context, context.CancelFunc)

func (t Timeouts) store() timeoutFunc {
	return func(ctx context.Context) (context.Context, context.CancelFunc) {
		return withTimeout(ctx, t.Store)
	}
}

func transitionError(err error) error {
	return &DomainError{
		Code:    CodeInvalidTransition,
		Message: err.Error(),
		Err:     err,
	}
}
