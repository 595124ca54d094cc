package obligation

import (
	"time"

	"github.com/shopspring/decimal"
)

// CumulativePaid sums payment amounts, counting negative amounts as zero.
func CumulativePaid(payments []Payment) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		if p.Amount.IsPositive() {
			paid = paid.Add(p.Amount)
		}
	}
	return paid
}

// Reconcile matches recorded payments against a schedule. Payments carry no
// period tag, so the cumulative amount paid is allocated to periods in due
// order: a period is paid only when everything scheduled up to and including
// it is covered. The returned entries are a copy with Status filled in; the
// inputs are not modified.
func Reconcile(entries []ScheduleEntry, payments []Payment, asOf time.Time) ([]ScheduleEntry, Summary) {
	paid := CumulativePaid(payments)

	reconciled := make([]ScheduleEntry, len(entries))
	scheduledSoFar := decimal.Zero
	var nextDue *time.Time

	for i, e := range entries {
		scheduledSoFar = scheduledSoFar.Add(e.TotalPayment)
		if paid.GreaterThanOrEqual(scheduledSoFar) {
			e.Status = PeriodPaid
		} else {
			e.Status = PeriodUnpaid
			if nextDue == nil {
				due := e.DueDate
				nextDue = &due
			}
		}
		reconciled[i] = e
	}

	totalDue := scheduledSoFar
	outstanding := totalDue.Sub(paid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	summary := Summary{
		CumulativePaid:     paid,
		TotalDue:           totalDue,
		OutstandingBalance: outstanding,
		NextDueDate:        nextDue,
		IsFullySettled:     paid.GreaterThanOrEqual(totalDue),
		Indeterminate:      len(entries) > 0 && totalDue.IsZero(),
	}
	if nextDue != nil {
		days := DaysBetween(asOf, *nextDue)
		summary.DaysToNextDue = &days
	}

	return reconciled, summary
}

// Overdue reports whether the summary's next unpaid period is past due.
func (s Summary) Overdue() bool {
	return s.DaysToNextDue != nil && *s.DaysToNextDue < 0
}
