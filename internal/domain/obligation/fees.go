package obligation

import "github.com/shopspring/decimal"

type FeeSchedule struct {
	ServiceChargeRate  decimal.Decimal
	FilingFeeRate      decimal.Decimal
	CapitalBuildupRate decimal.Decimal
}

// FeeDisclosure lists the one-time loan deductions. They reduce the amount
// released to the member and are never part of the amortization schedule or
// the amount due.
type FeeDisclosure struct {
	ServiceCharge   decimal.Decimal
	FilingFee       decimal.Decimal
	CapitalBuildup  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetProceeds     decimal.Decimal
}

func ComputeFees(principal decimal.Decimal, fees FeeSchedule) FeeDisclosure {
	if !principal.IsPositive() {
		principal = decimal.Zero
	}
	d := FeeDisclosure{
		ServiceCharge:  principal.Mul(fees.ServiceChargeRate).Round(moneyPlaces),
		FilingFee:      principal.Mul(fees.FilingFeeRate).Round(moneyPlaces),
		CapitalBuildup: principal.Mul(fees.CapitalBuildupRate).Round(moneyPlaces),
	}
	d.TotalDeductions = d.ServiceCharge.Add(d.FilingFee).Add(d.CapitalBuildup)
	d.NetProceeds = principal.Sub(d.TotalDeductions)
	return d
}
