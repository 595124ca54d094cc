package obligation

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindLoan     Kind = "LOAN"
	KindPurchase Kind = "PURCHASE"
	KindBill     Kind = "BILL"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusPaid      Status = "PAID"
	StatusCompleted Status = "COMPLETED"
)

// Closed reports whether the obligation was marked finished by an upstream
// process and must be left out of due-date aggregation.
func (s Status) Closed() bool {
	return s == StatusPaid || s == StatusCompleted
}

// Payable reports whether payments may be recorded against the obligation.
func (s Status) Payable() bool {
	return s == StatusApproved
}

type PeriodStatus string

const (
	PeriodPaid   PeriodStatus = "PAID"
	PeriodUnpaid PeriodStatus = "UNPAID"
)

type Obligation struct {
	ID              int64
	MemberID        int64
	Kind            Kind
	Status          Status
	Principal       decimal.Decimal
	TermMonths      int
	MonthlyRate     decimal.Decimal
	PaymentMethod   PaymentMethod
	OriginationDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveOrigination is the date periods are counted from: the approval
// or creation date when set, otherwise the record creation timestamp.
func (o *Obligation) EffectiveOrigination() time.Time {
	if o.OriginationDate != nil && !o.OriginationDate.IsZero() {
		return *o.OriginationDate
	}
	return o.CreatedAt
}

// Amortized reports whether the obligation is repaid over a multi-period
// schedule. Purchases and bills are single-installment.
func (o *Obligation) Amortized() bool {
	return o.Kind == KindLoan
}

type Payment struct {
	ID           int64
	ObligationID int64
	Amount       decimal.Decimal
	PaidAt       time.Time
	PeriodIndex  *int
	CreatedAt    time.Time
}

type ScheduleEntry struct {
	PeriodIndex      int
	DueDate          time.Time
	InterestPortion  decimal.Decimal
	PrincipalPortion decimal.Decimal
	TotalPayment     decimal.Decimal
	RemainingBalance decimal.Decimal
	Status           PeriodStatus
}

type Summary struct {
	CumulativePaid     decimal.Decimal
	TotalDue           decimal.Decimal
	OutstandingBalance decimal.Decimal
	NextDueDate        *time.Time
	DaysToNextDue      *int
	IsFullySettled     bool
	// Indeterminate marks a summary computed from an all-zero schedule.
	// Callers must render it as "cannot compute", not as settled.
	Indeterminate bool
}

type WarningCode string

const (
	WarnMalformedObligation WarningCode = "MALFORMED_OBLIGATION"
	WarnDegenerateTerm      WarningCode = "DEGENERATE_TERM"
	WarnClockSkew           WarningCode = "CLOCK_SKEW"
)

type Warning struct {
	Code    WarningCode
	Field   string
	Message string
}
