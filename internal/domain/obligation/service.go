package obligation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"obligation-engine/internal/event"
	"obligation-engine/internal/infrastructure/monitoring"
	"obligation-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type ObligationService interface {
	GetObligation(ctx context.Context, obligationID int64) (*Obligation, error)

	ListMemberObligations(ctx context.Context, memberID int64) ([]*Obligation, error)

	ListObligationsByStatus(ctx context.Context, status Status) ([]*Obligation, error)

	GetStatement(ctx context.Context, obligationID int64, asOf time.Time) (*Statement, error)

	ListPayments(ctx context.Context, obligationID int64) ([]Payment, error)

	ListMemberStatements(ctx context.Context, memberID int64, asOf time.Time) ([]*Statement, error)

	Statements(ctx context.Context, obligations []*Obligation, asOf time.Time) ([]*Statement, error)

	MemberDueOverview(ctx context.Context, memberID int64, asOf time.Time) (*DueOverview, error)

	RecordPayment(ctx context.Context, obligationID int64, amount decimal.Decimal, paidAt time.Time, periodIndex *int) (*Payment, error)

	CloseSettled(ctx context.Context, st *Statement) (bool, error)

	QuoteLoan(principal decimal.Decimal, termMonths int, origination time.Time) (LoanQuote, error)

	QuoteDeferred(subtotal decimal.Decimal, methodLabel string, origination time.Time) DeferredTerms
}

// DueOverview aggregates a member's obligations for dashboards. Pending,
// Active, Settled, Rejected and Indeterminate add up to the member's
// obligation count; Indeterminate holds approved obligations whose amount due
// cannot be computed.
type DueOverview struct {
	MemberID            int64
	AsOf                time.Time
	Pending             int
	Active              int
	Overdue             int
	Settled             int
	Rejected            int
	Indeterminate       int
	TotalOutstanding    decimal.Decimal
	NextDueDate         *time.Time
	DaysToNextDue       *int
	NextDueObligationID *int64
	Warnings            []Warning
}

type LoanQuote struct {
	Schedule Schedule
	TotalDue decimal.Decimal
	Fees     FeeDisclosure
}

var _ ObligationService = (*obligationService)(nil)

type obligationService struct {
	repo     Repository
	payments PaymentRepository
	policy   Policy
	pub      event.EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

func NewObligationService(repo Repository, payments PaymentRepository, policy Policy, pub event.EventPublisher, logger *slog.Logger) ObligationService {
	if repo == nil || payments == nil {
		panic("obligation and payment repositories cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewObligationService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NewNopEventPublisher(logger)
	}
	return &obligationService{
		repo:     repo,
		payments: payments,
		policy:   policy,
		pub:      pub,
		logger:   logger.With(slog.String("component", "obligationService")),
		now:      time.Now,
	}
}

func (s *obligationService) GetObligation(ctx context.Context, obligationID int64) (*Obligation, error) {
	if obligationID <= 0 {
		return nil, fmt.Errorf("%w: invalid obligation ID %d", apperrors.ErrInvalidArgument, obligationID)
	}
	o, err := s.repo.GetObligation(ctx, obligationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Obligation not found", "obligationID", obligationID)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to get obligation", "obligationID", obligationID, "error", err)
		return nil, fmt.Errorf("failed to get obligation %d: %w", obligationID, err)
	}
	return o, nil
}

func (s *obligationService) ListMemberObligations(ctx context.Context, memberID int64) ([]*Obligation, error) {
	if memberID <= 0 {
		return nil, fmt.Errorf("%w: invalid member ID %d", apperrors.ErrInvalidArgument, memberID)
	}
	obligations, err := s.repo.ListObligationsByMember(ctx, memberID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list member obligations", "memberID", memberID, "error", err)
		return nil, fmt.Errorf("failed to list obligations for member %d: %w", memberID, err)
	}
	return obligations, nil
}

func (s *obligationService) ListObligationsByStatus(ctx context.Context, status Status) ([]*Obligation, error) {
	obligations, err := s.repo.ListObligationsByStatus(ctx, status)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list obligations by status", "status", status, "error", err)
		return nil, fmt.Errorf("failed to list %s obligations: %w", status, err)
	}
	return obligations, nil
}

func (s *obligationService) GetStatement(ctx context.Context, obligationID int64, asOf time.Time) (*Statement, error) {
	o, err := s.GetObligation(ctx, obligationID)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListPayments(ctx, obligationID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list payments", "obligationID", obligationID, "error", err)
		return nil, fmt.Errorf("failed to list payments for obligation %d: %w", obligationID, err)
	}

	st := s.statement(ctx, o, payments, asOf)
	return st, nil
}

func (s *obligationService) ListPayments(ctx context.Context, obligationID int64) ([]Payment, error) {
	if _, err := s.GetObligation(ctx, obligationID); err != nil {
		return nil, err
	}
	payments, err := s.payments.ListPayments(ctx, obligationID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list payments", "obligationID", obligationID, "error", err)
		return nil, fmt.Errorf("failed to list payments for obligation %d: %w", obligationID, err)
	}
	return payments, nil
}

func (s *obligationService) ListMemberStatements(ctx context.Context, memberID int64, asOf time.Time) ([]*Statement, error) {
	obligations, err := s.ListMemberObligations(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.Statements(ctx, obligations, asOf)
}

// Statements reconciles a set of obligations, fetching the payments for all
// of them with one store call.
func (s *obligationService) Statements(ctx context.Context, obligations []*Obligation, asOf time.Time) ([]*Statement, error) {
	if len(obligations) == 0 {
		return []*Statement{}, nil
	}

	ids := make([]int64, 0, len(obligations))
	for _, o := range obligations {
		ids = append(ids, o.ID)
	}

	byObligation, err := s.payments.ListPaymentsForObligations(ctx, ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to batch-load payments", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to load payments for %d obligations: %w", len(ids), err)
	}

	statements := make([]*Statement, 0, len(obligations))
	for _, o := range obligations {
		statements = append(statements, s.statement(ctx, o, byObligation[o.ID], asOf))
	}
	return statements, nil
}

func (s *obligationService) statement(ctx context.Context, o *Obligation, payments []Payment, asOf time.Time) *Statement {
	st := s.policy.Statement(o, payments, asOf)

	outcome := "open"
	switch {
	case st.Summary.Indeterminate:
		outcome = "indeterminate"
	case st.Summary.IsFullySettled:
		outcome = "settled"
	case st.Overdue():
		outcome = "overdue"
	}
	monitoring.RecordReconciliation(string(o.Kind), outcome)

	for _, w := range st.Warnings {
		s.logger.WarnContext(ctx, "Obligation reconciled with warning",
			"obligationID", o.ID, "code", w.Code, "field", w.Field, "message", w.Message)
	}
	return st
}

func (s *obligationService) MemberDueOverview(ctx context.Context, memberID int64, asOf time.Time) (*DueOverview, error) {
	obligations, err := s.ListMemberObligations(ctx, memberID)
	if err != nil {
		return nil, err
	}

	overview := &DueOverview{MemberID: memberID, AsOf: asOf, TotalOutstanding: decimal.Zero}

	open := make([]*Obligation, 0, len(obligations))
	for _, o := range obligations {
		switch {
		case o.Status.Closed():
			overview.Settled++
		case o.Status == StatusPending:
			overview.Pending++
		case o.Status == StatusRejected:
			overview.Rejected++
		case o.Status.Payable():
			open = append(open, o)
		}
	}

	statements, err := s.Statements(ctx, open, asOf)
	if err != nil {
		return nil, err
	}

	for _, st := range statements {
		overview.Warnings = append(overview.Warnings, st.Warnings...)
		if st.Summary.Indeterminate {
			overview.Indeterminate++
			continue
		}
		if st.Summary.IsFullySettled {
			overview.Settled++
			continue
		}
		overview.Active++
		if st.Overdue() {
			overview.Overdue++
		}
		overview.TotalOutstanding = overview.TotalOutstanding.Add(st.Summary.OutstandingBalance)

		next := st.Summary.NextDueDate
		if next != nil && (overview.NextDueDate == nil || next.Before(*overview.NextDueDate)) {
			due := *next
			id := st.Obligation.ID
			overview.NextDueDate = &due
			overview.NextDueObligationID = &id
		}
	}

	if overview.NextDueDate != nil {
		days := DaysBetween(asOf, *overview.NextDueDate)
		overview.DaysToNextDue = &days
	}
	return overview, nil
}

func (s *obligationService) RecordPayment(ctx context.Context, obligationID int64, amount decimal.Decimal, paidAt time.Time, periodIndex *int) (p *Payment, err error) {
	s.logger.InfoContext(ctx, "Recording payment", "obligationID", obligationID, "amount", amount.StringFixed(moneyPlaces))

	defer func() {
		status := "success"
		switch {
		case err == nil:
		case errors.Is(err, apperrors.ErrInvalidPaymentAmount):
			status = "failure_amount"
		case errors.Is(err, apperrors.ErrObligationSettled):
			status = "failure_settled"
		case errors.Is(err, apperrors.ErrObligationNotPayable):
			status = "failure_not_payable"
		case errors.Is(err, apperrors.ErrNotFound):
			status = "failure_not_found"
		default:
			status = "failure_internal"
		}
		monitoring.RecordPayment(status)
	}()

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount %s must be positive", apperrors.ErrInvalidPaymentAmount, amount.String())
	}
	if periodIndex != nil && *periodIndex < 1 {
		return nil, apperrors.NewValidationError("periodIndex", "must be 1 or greater")
	}

	o, err := s.GetObligation(ctx, obligationID)
	if err != nil {
		return nil, err
	}
	if o.Status.Closed() {
		return nil, fmt.Errorf("%w: obligation %d is %s", apperrors.ErrObligationSettled, obligationID, o.Status)
	}
	if !o.Status.Payable() {
		return nil, fmt.Errorf("%w: obligation %d is %s", apperrors.ErrObligationNotPayable, obligationID, o.Status)
	}
	if periodIndex != nil && o.Amortized() && *periodIndex > max(o.TermMonths, 1) {
		return nil, apperrors.NewValidationError("periodIndex", fmt.Sprintf("exceeds term of %d months", max(o.TermMonths, 1)))
	}

	if paidAt.IsZero() {
		paidAt = s.now()
	}

	recorded, err := s.payments.RecordPayment(ctx, &Payment{
		ObligationID: obligationID,
		Amount:       amount.Round(moneyPlaces),
		PaidAt:       paidAt,
		PeriodIndex:  periodIndex,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to store payment", "obligationID", obligationID, "error", err)
		return nil, fmt.Errorf("%w: could not record payment: %v", apperrors.ErrInternalServer, err)
	}

	pubErr := s.pub.PublishPaymentRecorded(ctx, event.PaymentRecordedEvent{
		ObligationID: obligationID,
		MemberID:     o.MemberID,
		PaymentID:    recorded.ID,
		Amount:       recorded.Amount.StringFixed(moneyPlaces),
		PaidAt:       recorded.PaidAt,
		PeriodIndex:  recorded.PeriodIndex,
	})
	if pubErr != nil {
		s.logger.ErrorContext(ctx, "Failed to publish payment recorded event", "obligationID", obligationID, "error", pubErr)
	}

	s.logger.InfoContext(ctx, "Payment recorded", "obligationID", obligationID, "paymentID", recorded.ID)
	return recorded, nil
}

// CloseSettled marks a fully settled, still-approved obligation as finished:
// loans become PAID, purchases and bills COMPLETED. It reports whether the
// status changed.
func (s *obligationService) CloseSettled(ctx context.Context, st *Statement) (bool, error) {
	o := st.Obligation
	if !o.Status.Payable() || !st.Summary.IsFullySettled || st.Summary.Indeterminate {
		return false, nil
	}

	newStatus := StatusCompleted
	if o.Amortized() {
		newStatus = StatusPaid
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, newStatus); err != nil {
		s.logger.ErrorContext(ctx, "Failed to close settled obligation", "obligationID", o.ID, "error", err)
		return false, fmt.Errorf("failed to mark obligation %d %s: %w", o.ID, newStatus, err)
	}
	o.Status = newStatus

	pubErr := s.pub.PublishObligationSettled(ctx, event.ObligationSettledEvent{
		ObligationID:   o.ID,
		MemberID:       o.MemberID,
		Kind:           string(o.Kind),
		NewStatus:      string(newStatus),
		TotalDue:       st.Summary.TotalDue.StringFixed(moneyPlaces),
		CumulativePaid: st.Summary.CumulativePaid.StringFixed(moneyPlaces),
	})
	if pubErr != nil {
		s.logger.ErrorContext(ctx, "Failed to publish obligation settled event", "obligationID", o.ID, "error", pubErr)
	}

	s.logger.InfoContext(ctx, "Obligation closed", "obligationID", o.ID, "status", newStatus)
	return true, nil
}

func (s *obligationService) QuoteLoan(principal decimal.Decimal, termMonths int, origination time.Time) (LoanQuote, error) {
	if limit := s.policy.MaxTerm(); termMonths > limit {
		return LoanQuote{}, fmt.Errorf("%w: termMonths %d exceeds the maximum of %d", apperrors.ErrInvalidArgument, termMonths, limit)
	}
	schedule := s.policy.Cache.Build(principal, termMonths, origination, s.policy.MonthlyRate)
	return LoanQuote{
		Schedule: schedule,
		TotalDue: schedule.TotalDue(),
		Fees:     ComputeFees(principal, s.policy.Fees),
	}, nil
}

func (s *obligationService) QuoteDeferred(subtotal decimal.Decimal, methodLabel string, origination time.Time) DeferredTerms {
	method := ClassifyPaymentMethod(methodLabel, s.policy.DeferredLabels)
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}
	return ResolveDeferred(subtotal, method, origination, s.policy.SurchargeRate)
}
