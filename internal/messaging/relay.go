// Package messaging relays websocket change events between API instances over
// an AMQP fanout exchange, so a write handled by one instance reaches clients
// and ledger subscriptions connected to every other.
package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	publishTimeout = 5 * time.Second
	maxBackoff     = 30 * time.Second
)

// Broadcaster delivers events to the clients connected to this instance.
// *websocket.Hub implements it.
type Broadcaster interface {
	Broadcast(workspaceID uuid.UUID, event websocket.Event)
	BroadcastRaw(workspaceID uuid.UUID, eventType string, data []byte)
}

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Relay publishes events to the exchange and broadcasts every event it
// consumes to the local hub, including its own
type Relay struct {
	url        string
	exchange   string
	instanceID string
	local      Broadcaster

	mu        sync.RWMutex
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	publisher amqpPublisher
	queue     string
}

// Ensure Relay implements EventPublisher
var _ websocket.EventPublisher = (*Relay)(nil)

// NewRelay connects to the broker and declares the exchange and this
// instance's exclusive queue
func NewRelay(url, exchange string, local Broadcaster) (*Relay, error) {
	r := &Relay{
		url:        url,
		exchange:   exchange,
		instanceID: uuid.New().String(),
		local:      local,
	}
	if err := r.connect(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Relay) connect() error {
	conn, err := amqp091.Dial(r.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		r.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	); err != nil {
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Server-named queue that disappears with this instance
	queue, err := channel.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		conn.Close()
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := channel.QueueBind(queue.Name, "", r.exchange, false, nil); err != nil {
		conn.Close()
		return fmt.Errorf("bind queue: %w", err)
	}

	r.mu.Lock()
	old := r.conn
	r.conn = conn
	r.channel = channel
	r.publisher = channel
	r.queue = queue.Name
	r.mu.Unlock()

	if old != nil && !old.IsClosed() {
		old.Close()
	}

	log.Info().Str("exchange", r.exchange).Str("queue", queue.Name).Msg("AMQP relay connected")
	return nil
}

// Publish implements websocket.EventPublisher. When the broker is unreachable
// the event is still delivered to this instance's clients.
func (r *Relay) Publish(workspaceID uuid.UUID, event websocket.Event) {
	if err := r.publish(context.Background(), workspaceID, event); err != nil {
		log.Warn().
			Err(err).
			Str("workspace_id", workspaceID.String()).
			Str("event_type", event.Type).
			Msg("Relay publish failed, broadcasting locally")
		r.local.Broadcast(workspaceID, event)
	}
}

func (r *Relay) publish(ctx context.Context, workspaceID uuid.UUID, event websocket.Event) error {
	msg, err := NewEventMessage(workspaceID, event, r.instanceID)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	r.mu.RLock()
	publisher := r.publisher
	r.mu.RUnlock()
	if publisher == nil {
		return fmt.Errorf("relay not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return publisher.PublishWithContext(
		ctx,
		r.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   msg.Timestamp,
			Body:        body,
		},
	)
}

// Run consumes relayed events until ctx is done, reconnecting with
// exponential backoff when the broker connection drops
func (r *Relay) Run(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		err := r.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("AMQP relay consumer stopped, reconnecting")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(exponentialBackoff(attempt)):
		}

		if err := r.connect(); err != nil {
			log.Error().Err(err).Msg("AMQP relay reconnect failed")
			continue
		}
		attempt = -1
	}
}

func (r *Relay) consume(ctx context.Context) error {
	r.mu.RLock()
	channel, queue := r.channel, r.queue
	r.mu.RUnlock()
	if channel == nil {
		return fmt.Errorf("relay not connected")
	}

	deliveries, err := channel.Consume(
		queue, // queue
		"",    // consumer
		true,  // auto-ack, events are best-effort
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := r.dispatch(delivery.Body); err != nil {
				log.Error().Err(err).Msg("Dropping undecodable relay message")
			}
		}
	}
}

// dispatch forwards one relayed event to the local hub
func (r *Relay) dispatch(body []byte) error {
	msg, err := EventMessageFromJSON(body)
	if err != nil {
		return err
	}
	r.local.BroadcastRaw(msg.WorkspaceID, msg.Type, msg.Event)
	return nil
}

// Close closes the channel and connection
func (r *Relay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publisher = nil
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func exponentialBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 5 {
		return maxBackoff
	}
	d := time.Second << uint(attempt)
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
