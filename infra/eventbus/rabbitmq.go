// Package eventbus is the AMQP implementation of the event publisher. Events
// go to a single durable queue as persistent JSON messages; delivery to
// consumers is at-least-once.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/finmesh/transaction-service/pkg/config"
	"github.com/finmesh/transaction-service/pkg/domain"
	"github.com/finmesh/transaction-service/pkg/eventbus"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher publishes domain events to a durable RabbitMQ queue.
//
// Publishing is best-effort: when the channel is not established (broker down
// at boot, or closed underneath us) Publish logs, drops the event and returns
// nil. Missed events are not buffered or replayed.
type RabbitPublisher struct {
	url    string
	queue  string
	logger *slog.Logger

	mu    sync.RWMutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	ready bool
}

// NewRabbitPublisher creates a publisher for the configured queue. It does
// not connect; call Connect before publishing.
func NewRabbitPublisher(cfg *config.AMQP, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{
		url:    cfg.Url,
		queue:  cfg.Queue,
		logger: logger.With("bus", "rabbitmq", "queue", cfg.Queue),
	}
}

// Connect dials the broker, opens a channel and declares the durable queue.
func (p *RabbitPublisher) Connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dialing rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() //nolint:errcheck
		return fmt.Errorf("opening channel: %w", err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		ch.Close()   //nolint:errcheck
		conn.Close() //nolint:errcheck
		return fmt.Errorf("declaring queue %q: %w", p.queue, err)
	}

	p.mu.Lock()
	p.conn = conn
	p.ch = ch
	p.ready = true
	p.mu.Unlock()

	go p.watchClose(ch)

	p.logger.Info("connected to rabbitmq, queue ready")
	return nil
}

// watchClose flips the publisher into degraded mode when the channel closes.
func (p *RabbitPublisher) watchClose(ch *amqp.Channel) {
	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	if err := <-closed; err != nil {
		p.logger.Error("rabbitmq channel closed, events will be dropped", "error", err)
	}
	p.mu.Lock()
	if p.ch == ch {
		p.ready = false
	}
	p.mu.Unlock()
}

// Publish implements eventbus.Publisher. Events are wrapped in the
// {id, type, timestamp, payload} envelope and sent with persistent delivery.
func (p *RabbitPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	p.mu.RLock()
	ch, ready := p.ch, p.ready
	p.mu.RUnlock()

	if !ready {
		p.logger.Warn("rabbitmq not ready, event not sent", "type", eventType)
		return nil
	}

	event := domain.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event %s: %w", eventType, err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.Timestamp,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing event %s: %w", eventType, err)
	}

	p.logger.Debug("event published", "type", eventType, "event_id", event.ID)
	return nil
}

// Close shuts the channel and connection down. The publisher cannot be
// reused afterwards.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ready = false
	if p.ch != nil {
		p.ch.Close() //nolint:errcheck
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
		p.conn = nil
	}
	return nil
}

var _ eventbus.Publisher = (*RabbitPublisher)(nil)
