package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakePublisher struct {
	calls []published
	err   error
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if p.err != nil {
		return p.err
	}
	p.calls = append(p.calls, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestNewLeadEvent(t *testing.T) {
	lead := &entity.Lead{ID: 3, Name: "Ana"}

	a := NewLeadEvent(EventLeadCreated, 3, lead)
	b := NewLeadEvent(EventLeadCreated, 3, lead)

	assert.NotEmpty(t, a.EventID)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.Equal(t, int64(3), a.LeadID)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestPublishLeadEvent(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub)
	event := NewLeadEvent(EventLeadUpdated, 9, &entity.Lead{ID: 9, Name: "Ana", Status: "won"})

	require.NoError(t, p.PublishLeadEvent(context.Background(), event))

	require.Len(t, pub.calls, 1)
	call := pub.calls[0]
	assert.Equal(t, ExchangeName, call.exchange)
	assert.Equal(t, EventLeadUpdated, call.key)
	assert.Equal(t, "application/json", call.msg.ContentType)
	assert.Equal(t, amqp.Persistent, call.msg.DeliveryMode)
	assert.Equal(t, event.EventID, call.msg.MessageId)

	var got LeadEvent
	require.NoError(t, json.Unmarshal(call.msg.Body, &got))
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, "won", got.Lead.Status)
}

func TestPublishLeadEventDeletedHasNoLead(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub)

	require.NoError(t, p.PublishLeadEvent(context.Background(), NewLeadEvent(EventLeadDeleted, 4, nil)))

	require.Len(t, pub.calls, 1)
	assert.NotContains(t, string(pub.calls[0].msg.Body), `"lead":`)
}

func TestPublishLeadEventError(t *testing.T) {
	p := NewProducer(&fakePublisher{err: errors.New("channel/connection is not open")})

	err := p.PublishLeadEvent(context.Background(), NewLeadEvent(EventLeadCreated, 1, &entity.Lead{ID: 1}))
	assert.ErrorContains(t, err, "publish lead.created")
}
