package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// LeadUseCase holds the rules behind the five lead routes. It keeps no state
// between calls; consistency is left to the repository.
type LeadUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Publisher EventPublisher
	Logger    *zap.Logger
}

func NewLeadUseCase(repo entity.LeadRepositoryInterface, publisher EventPublisher, logger *zap.Logger) *LeadUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadUseCase{
		Repo:      repo,
		Publisher: publisher,
		Logger:    logger.Named("leads"),
	}
}

// List returns the leads matching input, newest first. Never nil.
func (uc *LeadUseCase) List(ctx context.Context, input ListLeadsInput) ([]entity.Lead, error) {
	leads, err := uc.Repo.List(ctx, entity.LeadFilter{
		Search: input.Search,
		Status: input.Status,
	})
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return leads, nil
}

func (uc *LeadUseCase) Get(ctx context.Context, id int64) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, NewNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (uc *LeadUseCase) Create(ctx context.Context, input LeadInput) (*entity.Lead, error) {
	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return nil, NewValidationError(MsgMissingFields, errs...)
	}

	id, err := uc.Repo.Create(ctx, input.toLead())
	if err != nil {
		uc.Logger.Error("insert lead failed", zap.Error(err))
		return nil, NewStoreWriteError(err)
	}

	created, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		uc.Logger.Error("reload created lead failed", zap.Int64("id", id), zap.Error(err))
		return nil, NewStoreWriteError(fmt.Errorf("reload lead %d: %w", id, err))
	}

	uc.publish(ctx, queue.EventLeadCreated, created.ID, created)
	return created, nil
}

// Update overwrites every editable field of lead id. Missing required fields
// are rejected the same way Create rejects them.
func (uc *LeadUseCase) Update(ctx context.Context, id int64, input LeadInput) (*entity.Lead, error) {
	if _, err := uc.Get(ctx, id); err != nil {
		return nil, err
	}

	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return nil, NewValidationError(MsgMissingFields, errs...)
	}

	lead := input.toLead()
	lead.ID = id

	matched, err := uc.Repo.Update(ctx, lead)
	if err != nil {
		return nil, err
	}
	if !matched {
		// deleted between the check and the write
		return nil, NewNotFoundError()
	}

	updated, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, queue.EventLeadUpdated, updated.ID, updated)
	return updated, nil
}

func (uc *LeadUseCase) Delete(ctx context.Context, id int64) error {
	matched, err := uc.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return NewNotFoundError()
	}

	uc.publish(ctx, queue.EventLeadDeleted, id, nil)
	return nil
}

// publish never fails the request; the write already happened.
func (uc *LeadUseCase) publish(ctx context.Context, eventType string, id int64, lead *entity.Lead) {
	event := queue.NewLeadEvent(eventType, id, lead)
	if err := uc.Publisher.PublishLeadEvent(ctx, event); err != nil {
		uc.Logger.Warn("publish lead event failed",
			zap.String("type", eventType),
			zap.Int64("id", id),
			zap.Error(err),
		)
	}
}
