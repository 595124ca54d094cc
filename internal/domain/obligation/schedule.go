package obligation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

type Schedule struct {
	Entries  []ScheduleEntry
	Warnings []Warning
}

// TotalDue sums every period's total payment.
func (s Schedule) TotalDue() decimal.Decimal {
	return sumTotals(s.Entries)
}

// Degenerate reports a schedule that carries no money at all, which happens
// when the principal could not be read. It means "cannot compute".
func (s Schedule) Degenerate() bool {
	return len(s.Entries) > 0 && s.TotalDue().IsZero()
}

// ParseAmount reads a decimal amount from user or storage input. Anything
// that is not a number comes back as zero with ok=false.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// BuildSchedule produces a declining-balance amortization schedule with equal
// principal installments. Interest for each period is charged on the balance
// left after earlier periods, and the last period absorbs whatever balance
// remains so the schedule always closes at exactly zero.
//
// Bad input never fails: a non-positive principal yields a single zero period
// and a non-positive term is treated as one month. Both are reported in
// Schedule.Warnings.
func BuildSchedule(principal decimal.Decimal, termMonths int, origination time.Time, monthlyRate decimal.Decimal) Schedule {
	var warnings []Warning

	if termMonths <= 0 {
		warnings = append(warnings, Warning{
			Code:    WarnDegenerateTerm,
			Field:   "termMonths",
			Message: fmt.Sprintf("term of %d months treated as 1", termMonths),
		})
		termMonths = 1
	}

	if !principal.IsPositive() {
		warnings = append(warnings, Warning{
			Code:    WarnMalformedObligation,
			Field:   "principal",
			Message: fmt.Sprintf("principal %s is not positive; schedule cannot be computed", principal.String()),
		})
		principal = decimal.Zero
		termMonths = 1
	}

	if monthlyRate.IsNegative() {
		warnings = append(warnings, Warning{
			Code:    WarnMalformedObligation,
			Field:   "monthlyRate",
			Message: fmt.Sprintf("monthly rate %s is negative; treated as 0", monthlyRate.String()),
		})
		monthlyRate = decimal.Zero
	}

	principal = principal.Round(moneyPlaces)
	installment := principal.Div(decimal.NewFromInt(int64(termMonths))).Round(moneyPlaces)
	remaining := principal
	entries := make([]ScheduleEntry, 0, termMonths)

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRate).Round(moneyPlaces)

		principalPart := installment
		if period == termMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		entries = append(entries, ScheduleEntry{
			PeriodIndex:      period,
			DueDate:          AddMonthsClamped(origination, period),
			InterestPortion:  interest,
			PrincipalPortion: principalPart,
			TotalPayment:     principalPart.Add(interest),
			RemainingBalance: remaining,
			Status:           PeriodUnpaid,
		})
	}

	return Schedule{Entries: entries, Warnings: warnings}
}

func sumTotals(entries []ScheduleEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.TotalPayment)
	}
	return total
}
