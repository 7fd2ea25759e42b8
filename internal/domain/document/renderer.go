// Package document renders paystub artifacts and certifies them with
// product-identifying metadata. Two renderers produce the same fixed layout:
// a vector PDF built directly with gofpdf and an HTML variant printed to PDF
// by a headless-browser backend.
package document

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"nwfpay/internal/domain/payroll"
)

// verificationTagPrefix marks the visual forensic tag embedded in every
// rendered paystub, independent of the document-level metadata.
const verificationTagPrefix = "NWF_PAYSTUB_"

const datePlaceholder = "—"

var amounts = message.NewPrinter(language.AmericanEnglish)

// formatAmount renders a currency value with fixed two-decimal locale
// formatting. Rounding happens here only; stored values stay unrounded.
func formatAmount(v float64) string {
	return amounts.Sprintf("%.2f", v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return datePlaceholder
	}
	return t.Format("01/02/2006")
}

// VerificationTag derives the forensic tag from a paystub identifier.
func VerificationTag(paystubID string) string {
	return verificationTagPrefix + paystubID
}

type deductionLine struct {
	Label   string
	Current string
	Ytd     string
}

// stubView is the render-ready projection of one paystub: all currency and
// date fields preformatted, optional fields already collapsed to empty
// strings so templates and layout code never branch.
type stubView struct {
	EmployerName    string
	EmployerAddress []string
	EmployeeName    string
	EmployeeID      string
	Address         string
	BankAccount     string
	PeriodStart     string
	PeriodEnd       string
	PayDate         string
	Hours           string
	Rate            string
	GrossCurrent    string
	GrossYtd        string
	Deductions      []deductionLine
	NetCurrent      string
	NetYtd          string
	Tag             string
	Code            string
}

func buildStubView(data payroll.RenderData) stubView {
	return stubView{
		EmployerName:    data.Employer.Name,
		EmployerAddress: data.Employer.AddressLines,
		EmployeeName:    data.Employee.FirstName + " " + data.Employee.LastName,
		EmployeeID:      data.Employee.ID,
		Address:         data.Employee.Address,
		BankAccount:     data.Employee.BankAccount,
		PeriodStart:     formatDate(data.Run.PeriodStart),
		PeriodEnd:       formatDate(data.Run.PeriodEnd),
		PayDate:         formatDate(data.Stub.PayDate),
		Hours:           amounts.Sprintf("%.2f", data.Run.Hours),
		Rate:            formatAmount(data.Run.HourlyRate),
		GrossCurrent:    formatAmount(data.Run.GrossPay),
		GrossYtd:        formatAmount(data.Ytd.Gross),
		Deductions: []deductionLine{
			{"Federal Income Tax", formatAmount(data.Run.FederalIncomeTax), formatAmount(data.Ytd.FederalIncomeTax)},
			{"State Income Tax", formatAmount(data.Run.StateIncomeTax), formatAmount(data.Ytd.StateIncomeTax)},
			{"Social Security", formatAmount(data.Run.SocialSecurity), formatAmount(data.Ytd.SocialSecurity)},
			{"Medicare", formatAmount(data.Run.Medicare), formatAmount(data.Ytd.Medicare)},
			{"Total Taxes", formatAmount(data.Run.TotalTaxes), formatAmount(data.Ytd.FederalIncomeTax + data.Ytd.StateIncomeTax + data.Ytd.SocialSecurity + data.Ytd.Medicare)},
		},
		NetCurrent: formatAmount(data.Run.NetPay),
		NetYtd:     formatAmount(data.Ytd.Net),
		Tag:        VerificationTag(data.Stub.ID),
		Code:       data.Stub.VerificationCode,
	}
}
