package event

import (
	"context"
	"log/slog"
)

// NopEventPublisher stands in when RabbitMQ is disabled. Events are logged
// at debug level and dropped.
type NopEventPublisher struct {
	logger *slog.Logger
}

func NewNopEventPublisher(logger *slog.Logger) EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NopEventPublisher{logger: logger.With("component", "NopEventPublisher")}
}

func (p *NopEventPublisher) PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error {
	event.stamp()
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyPaymentRecorded, "eventId", event.EventID)
	return nil
}

func (p *NopEventPublisher) PublishObligationSettled(ctx context.Context, event ObligationSettledEvent) error {
	event.stamp()
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyObligationSettled, "eventId", event.EventID)
	return nil
}

func (p *NopEventPublisher) PublishMemberOverdueChanged(ctx context.Context, event MemberOverdueChangedEvent) error {
	event.stamp()
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyMemberOverdueChanged, "eventId", event.EventID)
	return nil
}

var _ EventPublisher = (*NopEventPublisher)(nil)
