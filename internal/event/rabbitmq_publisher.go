package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	RoutingKeyPaymentRecorded      = "obligation.payment.recorded"
	RoutingKeyObligationSettled    = "obligation.settled"
	RoutingKeyMemberOverdueChanged = "member.overdue.changed"
	publisherAppID                 = "obligation-engine"
)

type EventPublisher interface {
	PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error
	PublishObligationSettled(ctx context.Context, event ObligationSettledEvent) error
	PublishMemberOverdueChanged(ctx context.Context, event MemberOverdueChangedEvent) error
}

// RabbitMQEventPublisher publishes on a single channel that is reopened
// after the broker closes it.
type RabbitMQEventPublisher struct {
	conn         *amqp.Connection
	exchangeName string
	logger       *slog.Logger

	mu      sync.Mutex
	channel *amqp.Channel
}

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (EventPublisher, error) {
	if conn == nil {
		return nil, errors.New("RabbitMQ connection cannot be nil")
	}
	if exchangeName == "" {
		return nil, errors.New("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publisher channel: %w", err)
	}
	if err := declareExchange(ch, exchangeName); err != nil {
		_ = ch.Close()
		return nil, err
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		conn:         conn,
		exchangeName: exchangeName,
		channel:      ch,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
	}, nil
}

// declareExchange is shared with the consumer so both sides agree on the
// exchange shape.
func declareExchange(ch *amqp.Channel, name string) error {
	if err := ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange '%s': %w", name, err)
	}
	return nil
}

func (p *RabbitMQEventPublisher) PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error {
	event.stamp()
	return p.publish(ctx, RoutingKeyPaymentRecorded, event.EventID, event)
}

func (p *RabbitMQEventPublisher) PublishObligationSettled(ctx context.Context, event ObligationSettledEvent) error {
	event.stamp()
	return p.publish(ctx, RoutingKeyObligationSettled, event.EventID, event)
}

func (p *RabbitMQEventPublisher) PublishMemberOverdueChanged(ctx context.Context, event MemberOverdueChangedEvent) error {
	event.stamp()
	return p.publish(ctx, RoutingKeyMemberOverdueChanged, event.EventID, event)
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey, messageID string, payload any) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey), slog.String("eventId", messageID))

	body, err := json.Marshal(payload)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		logCtx.WarnContext(ctx, "Publisher channel closed, reopening")
		ch, err := p.conn.Channel()
		if err != nil {
			logCtx.ErrorContext(ctx, "Failed to reopen RabbitMQ channel", slog.Any("error", err))
			return fmt.Errorf("failed to open channel: %w", err)
		}
		p.channel = ch
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Type:         routingKey,
			Timestamp:    time.Now(),
			Body:         body,
			AppId:        publisherAppID,
		},
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logCtx.DebugContext(ctx, "Published message", "bodySize", len(body))
	return nil
}

// Close releases the publish channel. The connection stays with the caller.
func (p *RabbitMQEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)
