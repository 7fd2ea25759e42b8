package payroll

import (
	"math"

	"nwfpay/internal/domain/tax"
)

// Sanitize coerces a non-finite amount to 0 so arithmetic never propagates
// NaN or infinities. This is the single coercion point for numeric input;
// callers do not re-check values downstream.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Compute applies the employee's withholding configuration and the statutory
// rates to gross pay. Amounts are unrounded; presentation rounding happens at
// render time only. Net pay may be negative for pathological inputs and is
// reported as-is.
func Compute(emp Employee, grossPay float64) TaxBreakdown {
	gross := Sanitize(grossPay)
	rates := tax.Resolve(emp.State)

	federalRate := rates.Federal
	if emp.FederalWithholdingRate != nil {
		federalRate = Sanitize(*emp.FederalWithholdingRate)
	}
	extraFederal := Sanitize(emp.ExtraWithholdingFederal)
	if emp.ExemptFederal {
		federalRate = 0
		extraFederal = 0
	}

	stateRate := rates.State
	if emp.StateWithholdingRate != nil {
		stateRate = Sanitize(*emp.StateWithholdingRate)
	}
	extraState := Sanitize(emp.ExtraWithholdingState)
	if emp.ExemptState {
		stateRate = 0
		extraState = 0
	}

	breakdown := TaxBreakdown{
		FederalIncomeTax: gross*federalRate + extraFederal,
		StateIncomeTax:   gross*stateRate + extraState,
		SocialSecurity:   gross * tax.SocialSecurityRate,
		Medicare:         gross * tax.MedicareRate,
	}
	breakdown.TotalTaxes = breakdown.FederalIncomeTax + breakdown.StateIncomeTax +
		breakdown.SocialSecurity + breakdown.Medicare
	breakdown.NetPay = gross - breakdown.TotalTaxes
	return breakdown
}
