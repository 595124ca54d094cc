package obligation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodImmediate PaymentMethod = "IMMEDIATE"
	MethodDeferred  PaymentMethod = "DEFERRED"
)

// ParsePaymentMethod accepts the enum values themselves, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodImmediate:
		return MethodImmediate, true
	case MethodDeferred:
		return MethodDeferred, true
	}
	return "", false
}

// ClassifyPaymentMethod maps a free-text payment method label from legacy
// records onto the closed enum. A label that already names an enum value is
// taken as is; otherwise it is deferred when it contains one of the known
// deferred labels.
func ClassifyPaymentMethod(label string, deferredLabels []string) PaymentMethod {
	if m, ok := ParsePaymentMethod(label); ok {
		return m
	}
	normalized := strings.ToLower(label)
	for _, known := range deferredLabels {
		known = strings.ToLower(strings.TrimSpace(known))
		if known != "" && strings.Contains(normalized, known) {
			return MethodDeferred
		}
	}
	return MethodImmediate
}

type DeferredTerms struct {
	Method    PaymentMethod
	DueDate   *time.Time
	Subtotal  decimal.Decimal
	Surcharge decimal.Decimal
	Total     decimal.Decimal
}

// ResolveDeferred prices a single-installment purchase or bill. Deferred
// payment adds a flat surcharge on the subtotal and falls due one calendar
// month after origination; immediate payment has neither.
func ResolveDeferred(subtotal decimal.Decimal, method PaymentMethod, origination time.Time, surchargeRate decimal.Decimal) DeferredTerms {
	subtotal = subtotal.Round(moneyPlaces)
	terms := DeferredTerms{
		Method:    method,
		Subtotal:  subtotal,
		Surcharge: decimal.Zero,
	}
	if method == MethodDeferred {
		terms.Surcharge = subtotal.Mul(surchargeRate).Round(moneyPlaces)
		due := AddMonthsClamped(origination, 1)
		terms.DueDate = &due
	}
	terms.Total = subtotal.Add(terms.Surcharge)
	return terms
}

type InstallmentStatus struct {
	Status             PeriodStatus
	OutstandingBalance decimal.Decimal
}

// ReconcileSingleInstallment settles a single-installment obligation with one
// cumulative comparison.
func ReconcileSingleInstallment(total, cumulativePaid decimal.Decimal) InstallmentStatus {
	if cumulativePaid.GreaterThanOrEqual(total) {
		return InstallmentStatus{Status: PeriodPaid, OutstandingBalance: decimal.Zero}
	}
	return InstallmentStatus{Status: PeriodUnpaid, OutstandingBalance: total.Sub(cumulativePaid)}
}
