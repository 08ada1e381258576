package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type LeadEvent struct {
	EventID    string       `json:"event_id"`
	Type       string       `json:"type"`
	LeadID     int64        `json:"lead_id"`
	Lead       *entity.Lead `json:"lead,omitempty"` // vazio em lead.deleted
	OccurredAt time.Time    `json:"occurred_at"`
}

func NewLeadEvent(eventType string, leadID int64, lead *entity.Lead) LeadEvent {
	return LeadEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		LeadID:     leadID,
		Lead:       lead,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, event LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		event.Type, // routing key
		false,      // Mandatory
		false,      // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	return nil
}
