package payroll

import (
	"math"
	"testing"

	"nwfpay/internal/domain/tax"
)

func floatPtr(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeItemizedBreakdown(t *testing.T) {
	emp := Employee{
		FederalWithholdingRate: floatPtr(0.18),
		StateWithholdingRate:   floatPtr(0.05),
	}
	breakdown := Compute(emp, 1000)

	if !almostEqual(breakdown.FederalIncomeTax, 180) {
		t.Fatalf("expected federal 180, got %v", breakdown.FederalIncomeTax)
	}
	if !almostEqual(breakdown.StateIncomeTax, 50) {
		t.Fatalf("expected state 50, got %v", breakdown.StateIncomeTax)
	}
	if !almostEqual(breakdown.SocialSecurity, 62) {
		t.Fatalf("expected social security 62, got %v", breakdown.SocialSecurity)
	}
	if !almostEqual(breakdown.Medicare, 14.5) {
		t.Fatalf("expected medicare 14.5, got %v", breakdown.Medicare)
	}
	if !almostEqual(breakdown.TotalTaxes, 306.5) {
		t.Fatalf("expected total 306.5, got %v", breakdown.TotalTaxes)
	}
	if !almostEqual(breakdown.NetPay, 693.5) {
		t.Fatalf("expected net 693.5, got %v", breakdown.NetPay)
	}
}

func TestComputeTotalsAreConsistent(t *testing.T) {
	emp := Employee{State: "CA", ExtraWithholdingFederal: 25, ExtraWithholdingState: 10}
	for _, gross := range []float64{0, 1, 99.99, 1234.56, 100000} {
		b := Compute(emp, gross)
		sum := b.FederalIncomeTax + b.StateIncomeTax + b.SocialSecurity + b.Medicare
		if !almostEqual(b.TotalTaxes, sum) {
			t.Fatalf("gross %v: total %v != sum of lines %v", gross, b.TotalTaxes, sum)
		}
		if !almostEqual(b.NetPay, gross-b.TotalTaxes) {
			t.Fatalf("gross %v: net %v != gross-total %v", gross, b.NetPay, gross-b.TotalTaxes)
		}
	}
}

func TestComputeZeroGross(t *testing.T) {
	b := Compute(Employee{}, 0)
	if b.FederalIncomeTax != 0 || b.StateIncomeTax != 0 || b.SocialSecurity != 0 ||
		b.Medicare != 0 || b.TotalTaxes != 0 || b.NetPay != 0 {
		t.Fatalf("expected all-zero breakdown, got %+v", b)
	}
}

func TestComputeFederalExemptionZerosOnlyFederal(t *testing.T) {
	emp := Employee{
		FederalWithholdingRate:  floatPtr(0.18),
		StateWithholdingRate:    floatPtr(0.05),
		ExtraWithholdingFederal: 50,
		ExemptFederal:           true,
	}
	b := Compute(emp, 1000)
	if b.FederalIncomeTax != 0 {
		t.Fatalf("expected federal 0 for exempt employee, got %v", b.FederalIncomeTax)
	}
	if !almostEqual(b.StateIncomeTax, 50) {
		t.Fatalf("expected state unaffected at 50, got %v", b.StateIncomeTax)
	}
}

func TestComputeStateExemptionZerosOnlyState(t *testing.T) {
	emp := Employee{
		FederalWithholdingRate: floatPtr(0.18),
		StateWithholdingRate:   floatPtr(0.05),
		ExtraWithholdingState:  25,
		ExemptState:            true,
	}
	b := Compute(emp, 1000)
	if b.StateIncomeTax != 0 {
		t.Fatalf("expected state 0 for exempt employee, got %v", b.StateIncomeTax)
	}
	if !almostEqual(b.FederalIncomeTax, 180) {
		t.Fatalf("expected federal unaffected at 180, got %v", b.FederalIncomeTax)
	}
}

func TestComputeStatutoryRatesIgnoreConfiguration(t *testing.T) {
	emp := Employee{
		FederalWithholdingRate: floatPtr(0.99),
		StateWithholdingRate:   floatPtr(0.99),
		ExemptFederal:          true,
		ExemptState:            true,
	}
	b := Compute(emp, 2000)
	if !almostEqual(b.SocialSecurity, 2000*tax.SocialSecurityRate) {
		t.Fatalf("expected social security %v, got %v", 2000*tax.SocialSecurityRate, b.SocialSecurity)
	}
	if !almostEqual(b.Medicare, 2000*tax.MedicareRate) {
		t.Fatalf("expected medicare %v, got %v", 2000*tax.MedicareRate, b.Medicare)
	}
}

func TestComputeJurisdictionFallback(t *testing.T) {
	// No explicit rates on the employee: TX withholds no state tax but still
	// inherits the default federal rate.
	b := Compute(Employee{State: "TX"}, 1000)
	if b.StateIncomeTax != 0 {
		t.Fatalf("expected TX state tax 0, got %v", b.StateIncomeTax)
	}
	if !almostEqual(b.FederalIncomeTax, 1000*tax.DefaultFederalRate) {
		t.Fatalf("expected federal %v, got %v", 1000*tax.DefaultFederalRate, b.FederalIncomeTax)
	}
}

func TestComputeExtraWithholdingCanDriveNetNegative(t *testing.T) {
	emp := Employee{ExtraWithholdingFederal: 100}
	b := Compute(emp, 10)
	if b.NetPay >= 0 {
		t.Fatalf("expected negative net for pathological input, got %v", b.NetPay)
	}
}

func TestSanitizeCoercesNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Sanitize(v); got != 0 {
			t.Fatalf("expected 0 for %v, got %v", v, got)
		}
	}
	if got := Sanitize(42.5); got != 42.5 {
		t.Fatalf("expected 42.5 to pass through, got %v", got)
	}
}

func TestComputeNaNGrossIsZero(t *testing.T) {
	b := Compute(Employee{FederalWithholdingRate: floatPtr(0.18)}, math.NaN())
	if b.NetPay != 0 || b.TotalTaxes != 0 {
		t.Fatalf("expected all-zero breakdown for NaN gross, got %+v", b)
	}
}
