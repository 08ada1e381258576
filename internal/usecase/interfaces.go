package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type EventPublisher interface {
	PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishLeadEvent(context.Context, queue.LeadEvent) error { return nil }
