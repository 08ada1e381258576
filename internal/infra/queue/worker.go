package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// Notifier tells the sales team about a freshly created lead (e-mail, chat...).
type Notifier interface {
	NotifyNewLead(ctx context.Context, lead entity.Lead) error
}

// Consumer is the part of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Notifiers fans a new lead out to every notifier. All of them run; their
// errors are joined.
type Notifiers []Notifier

func (ns Notifiers) NotifyNewLead(ctx context.Context, lead entity.Lead) error {
	var errs []error
	for _, n := range ns {
		if err := n.NotifyNewLead(ctx, lead); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var errMissingLead = errors.New("lead.created event without lead payload")

type Worker struct {
	Channel  Consumer
	Notifier Notifier
	Logger   *zap.Logger
}

func NewWorker(ch Consumer, notifier Notifier, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Logger:   logger.Named("lead-worker"),
	}
}

// Start consumes queueName until ctx is done or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.Logger.Info("worker waiting for messages", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.Logger.Warn("delivery channel closed", zap.String("queue", queueName))
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var event LeadEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		// malformed message, reject without requeue so it lands in the DLQ
		w.Logger.Error("invalid lead event", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	log := w.Logger.With(
		zap.String("event_id", event.EventID),
		zap.String("type", event.Type),
		zap.Int64("lead_id", event.LeadID),
	)

	if err := w.processMessage(ctx, event); err != nil {
		log.Error("lead event failed", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	log.Debug("lead event processed")
	_ = d.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, event LeadEvent) error {
	switch event.Type {
	case EventLeadCreated:
		if event.Lead == nil {
			return errMissingLead
		}
		return w.Notifier.NotifyNewLead(ctx, *event.Lead)
	default:
		// nothing to do, ack so it leaves the queue
		return nil
	}
}
