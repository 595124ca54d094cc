package obligation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDeferred_Deferred(t *testing.T) {
	terms := ResolveDeferred(d("1000"), MethodDeferred, date(2024, time.January, 31), d("0.01"))

	assert.Equal(t, MethodDeferred, terms.Method)
	require.NotNil(t, terms.DueDate)
	assert.Equal(t, date(2024, time.February, 29), *terms.DueDate)
	assertMoney(t, "1000.00", terms.Subtotal)
	assertMoney(t, "10.00", terms.Surcharge)
	assertMoney(t, "1010.00", terms.Total)
}

func TestResolveDeferred_Immediate(t *testing.T) {
	terms := ResolveDeferred(d("1000"), MethodImmediate, date(2024, time.January, 31), d("0.01"))

	assert.Nil(t, terms.DueDate)
	assertMoney(t, "0.00", terms.Surcharge)
	assertMoney(t, "1000.00", terms.Total)
}

func TestResolveDeferred_SurchargeRounding(t *testing.T) {
	terms := ResolveDeferred(d("123.45"), MethodDeferred, date(2024, time.March, 5), d("0.01"))
	assertMoney(t, "1.23", terms.Surcharge)
	assertMoney(t, "124.68", terms.Total)
}

func TestResolveDeferred_RoundsSubtotal(t *testing.T) {
	terms := ResolveDeferred(d("100.005"), MethodDeferred, date(2024, time.March, 5), d("0.01"))
	assert.True(t, d("100.01").Equal(terms.Subtotal), terms.Subtotal.String())
	assert.True(t, d("101.01").Equal(terms.Total), terms.Total.String())

	terms = ResolveDeferred(d("19.999"), MethodImmediate, date(2024, time.March, 5), d("0.01"))
	assert.True(t, d("20").Equal(terms.Total), terms.Total.String())
}

func TestReconcileSingleInstallment(t *testing.T) {
	status := ReconcileSingleInstallment(d("1010"), d("500"))
	assert.Equal(t, PeriodUnpaid, status.Status)
	assertMoney(t, "510.00", status.OutstandingBalance)

	status = ReconcileSingleInstallment(d("1010"), d("1010"))
	assert.Equal(t, PeriodPaid, status.Status)
	assertMoney(t, "0.00", status.OutstandingBalance)

	status = ReconcileSingleInstallment(d("1010"), d("2000"))
	assert.Equal(t, PeriodPaid, status.Status)
	assertMoney(t, "0.00", status.OutstandingBalance)
}

func TestClassifyPaymentMethod(t *testing.T) {
	labels := DefaultDeferredLabels
	tests := []struct {
		label string
		want  PaymentMethod
	}{
		{"DEFERRED", MethodDeferred},
		{"immediate", MethodImmediate},
		{"Pay after 1 month", MethodDeferred},
		{"30 Days Credit", MethodDeferred},
		{"Salary deduction - One Month", MethodDeferred},
		{"Cash", MethodImmediate},
		{"", MethodImmediate},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPaymentMethod(tt.label, labels))
		})
	}
}

func TestClassifyPaymentMethod_CustomLabels(t *testing.T) {
	assert.Equal(t, MethodDeferred, ClassifyPaymentMethod("utang", []string{"Utang"}))
	assert.Equal(t, MethodImmediate, ClassifyPaymentMethod("Pay after 1 month", []string{"utang", "  "}))
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod(" deferred ")
	assert.True(t, ok)
	assert.Equal(t, MethodDeferred, m)

	_, ok = ParsePaymentMethod("later")
	assert.False(t, ok)
}
