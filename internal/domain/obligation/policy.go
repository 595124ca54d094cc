package obligation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	DefaultMonthlyRate        = decimal.RequireFromString("0.02")
	DefaultServiceChargeRate  = decimal.RequireFromString("0.02")
	DefaultFilingFeeRate      = decimal.RequireFromString("0.01")
	DefaultCapitalBuildupRate = decimal.RequireFromString("0.02")
	DefaultSurchargeRate      = decimal.RequireFromString("0.01")
)

// DefaultMaxTermMonths caps the schedule length at fifty years.
const DefaultMaxTermMonths = 600

var DefaultDeferredLabels = []string{"1 month", "one month", "30 days", "deferred", "installment"}

// Policy holds the cooperative's lending terms and runs the engine against
// stored obligations.
type Policy struct {
	MonthlyRate    decimal.Decimal
	Fees           FeeSchedule
	SurchargeRate  decimal.Decimal
	DeferredLabels []string
	MaxTermMonths  int
	Cache          *ScheduleCache
}

func DefaultPolicy() Policy {
	return Policy{
		MonthlyRate: DefaultMonthlyRate,
		Fees: FeeSchedule{
			ServiceChargeRate:  DefaultServiceChargeRate,
			FilingFeeRate:      DefaultFilingFeeRate,
			CapitalBuildupRate: DefaultCapitalBuildupRate,
		},
		SurchargeRate:  DefaultSurchargeRate,
		DeferredLabels: DefaultDeferredLabels,
		MaxTermMonths:  DefaultMaxTermMonths,
	}
}

// MaxTerm returns the longest schedule the policy will build.
func (p Policy) MaxTerm() int {
	if p.MaxTermMonths <= 0 {
		return DefaultMaxTermMonths
	}
	return p.MaxTermMonths
}

type Statement struct {
	Obligation  *Obligation
	AsOf        time.Time
	Schedule    []ScheduleEntry
	Summary     Summary
	Installment *InstallmentStatus
	Deferred    *DeferredTerms
	Fees        *FeeDisclosure
	Warnings    []Warning
}

// rateFor returns the obligation's own monthly rate, or the policy rate for
// records stored without one.
func (p Policy) rateFor(o *Obligation) decimal.Decimal {
	if o.MonthlyRate.IsZero() {
		return p.MonthlyRate
	}
	return o.MonthlyRate
}

// Schedule builds the amortization schedule for a loan, served from the
// cache when one is configured. A stored term beyond MaxTerm yields a single
// zero period, which reconciles as indeterminate.
func (p Policy) Schedule(o *Obligation) Schedule {
	origination := o.EffectiveOrigination()
	if limit := p.MaxTerm(); o.TermMonths > limit {
		return Schedule{
			Entries: []ScheduleEntry{{
				PeriodIndex:      1,
				DueDate:          AddMonthsClamped(origination, 1),
				InterestPortion:  decimal.Zero,
				PrincipalPortion: decimal.Zero,
				TotalPayment:     decimal.Zero,
				RemainingBalance: decimal.Zero,
				Status:           PeriodUnpaid,
			}},
			Warnings: []Warning{{
				Code:    WarnMalformedObligation,
				Field:   "termMonths",
				Message: fmt.Sprintf("term of %d months exceeds the maximum of %d; schedule cannot be computed", o.TermMonths, limit),
			}},
		}
	}
	return p.Cache.Build(o.Principal, o.TermMonths, origination, p.rateFor(o))
}

// Statement reconciles an obligation against its payment history as of the
// given date. Loans go through the schedule builder and reconciler;
// purchases and bills go through the deferred-credit resolver.
func (p Policy) Statement(o *Obligation, payments []Payment, asOf time.Time) *Statement {
	origination := o.EffectiveOrigination()
	st := &Statement{Obligation: o, AsOf: asOf}

	if DaysBetween(origination, asOf) < 0 {
		st.Warnings = append(st.Warnings, Warning{
			Code:    WarnClockSkew,
			Field:   "asOf",
			Message: fmt.Sprintf("as-of date %s precedes origination %s", asOf.Format(time.DateOnly), origination.Format(time.DateOnly)),
		})
	}

	if o.Amortized() {
		schedule := p.Schedule(o)
		st.Warnings = append(st.Warnings, schedule.Warnings...)
		st.Schedule, st.Summary = Reconcile(schedule.Entries, payments, asOf)
		fees := ComputeFees(o.Principal, p.Fees)
		st.Fees = &fees
		return st
	}

	p.resolveSingleInstallment(st, payments)
	return st
}

func (p Policy) resolveSingleInstallment(st *Statement, payments []Payment) {
	o := st.Obligation
	subtotal := o.Principal
	if !subtotal.IsPositive() {
		st.Warnings = append(st.Warnings, Warning{
			Code:    WarnMalformedObligation,
			Field:   "principal",
			Message: fmt.Sprintf("subtotal %s is not positive; amount due cannot be computed", subtotal.String()),
		})
		subtotal = decimal.Zero
	}

	method := o.PaymentMethod
	if method == "" {
		method = MethodImmediate
	}
	terms := ResolveDeferred(subtotal, method, o.EffectiveOrigination(), p.SurchargeRate)
	st.Deferred = &terms

	paid := CumulativePaid(payments)
	installment := ReconcileSingleInstallment(terms.Total, paid)
	st.Installment = &installment

	st.Summary = Summary{
		CumulativePaid:     paid,
		TotalDue:           terms.Total,
		OutstandingBalance: installment.OutstandingBalance,
		IsFullySettled:     installment.Status == PeriodPaid,
		Indeterminate:      terms.Total.IsZero(),
	}
	if installment.Status == PeriodUnpaid {
		// Immediate-payment items fall due on the day they were created.
		due := o.EffectiveOrigination()
		if terms.DueDate != nil {
			due = *terms.DueDate
		}
		days := DaysBetween(st.AsOf, due)
		st.Summary.NextDueDate = &due
		st.Summary.DaysToNextDue = &days
	}
}

// Overdue reports whether the statement has an unpaid period past its due
// date. Indeterminate statements are never overdue.
func (s *Statement) Overdue() bool {
	return !s.Summary.Indeterminate && s.Summary.Overdue()
}
