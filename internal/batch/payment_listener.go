package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"obligation-engine/internal/domain/member"
	"obligation-engine/internal/domain/obligation"
	"obligation-engine/internal/event"
	"obligation-engine/internal/infrastructure/monitoring"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PaymentListener refreshes a single member as soon as one of their payments
// is recorded, so the overdue flag does not wait for the nightly sweep.
type PaymentListener struct {
	obligationService obligation.ObligationService
	memberService     member.MemberService
	now               func() time.Time
	logger            *slog.Logger
}

func NewPaymentListener(obligationSvc obligation.ObligationService, memberSvc member.MemberService, logger *slog.Logger) *PaymentListener {
	if obligationSvc == nil || memberSvc == nil || logger == nil {
		panic("PaymentListener dependencies cannot be nil")
	}
	return &PaymentListener{
		obligationService: obligationSvc,
		memberService:     memberSvc,
		now:               time.Now,
		logger:            logger.With("component", "PaymentListener"),
	}
}

func (l *PaymentListener) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	logCtx := l.logger.With(slog.Uint64("deliveryTag", d.DeliveryTag), slog.String("routingKey", d.RoutingKey))

	if d.RoutingKey != event.RoutingKeyPaymentRecorded {
		logCtx.WarnContext(ctx, "Received message with unknown routing key. Discarding.")
		monitoring.RecordEventConsumed(d.RoutingKey, "rejected")
		_ = d.Reject(false)
		return
	}

	var evt event.PaymentRecordedEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil || evt.MemberID <= 0 {
		logCtx.ErrorContext(ctx, "Failed to decode PaymentRecordedEvent", slog.Any("error", err), slog.String("body", string(d.Body)))
		monitoring.RecordEventConsumed(d.RoutingKey, "malformed")
		_ = d.Nack(false, false)
		return
	}

	logCtx = logCtx.With(slog.Int64("memberID", evt.MemberID), slog.String("eventID", evt.EventID))
	if err := l.RefreshMember(ctx, evt.MemberID); err != nil {
		logCtx.ErrorContext(ctx, "Failed to refresh member after payment", slog.Any("error", err))
		monitoring.RecordEventConsumed(d.RoutingKey, "failed")
		_ = d.Nack(false, false)
		return
	}

	if err := d.Ack(false); err != nil {
		logCtx.ErrorContext(ctx, "Failed to acknowledge message after successful processing", slog.Any("error", err))
		return
	}
	monitoring.RecordEventConsumed(d.RoutingKey, "ack")
}

// RefreshMember reconciles the member's approved obligations, closes the
// settled ones and stores the member's overdue flag.
func (l *PaymentListener) RefreshMember(ctx context.Context, memberID int64) error {
	all, err := l.obligationService.ListMemberObligations(ctx, memberID)
	if err != nil {
		return fmt.Errorf("listing obligations: %w", err)
	}

	open := make([]*obligation.Obligation, 0, len(all))
	for _, o := range all {
		if o.Status.Payable() {
			open = append(open, o)
		}
	}

	statements, err := l.obligationService.Statements(ctx, open, l.now())
	if err != nil {
		return fmt.Errorf("reconciling obligations: %w", err)
	}

	var overdueIDs []int64
	for _, st := range statements {
		if st.Overdue() {
			overdueIDs = append(overdueIDs, st.Obligation.ID)
		}
		if st.Summary.IsFullySettled && !st.Summary.Indeterminate {
			if _, err := l.obligationService.CloseSettled(ctx, st); err != nil {
				return fmt.Errorf("closing obligation %d: %w", st.Obligation.ID, err)
			}
		}
	}

	if _, err := l.memberService.UpdateOverdueStatus(ctx, memberID, len(overdueIDs) > 0, overdueIDs); err != nil {
		return fmt.Errorf("updating overdue status: %w", err)
	}
	return nil
}
