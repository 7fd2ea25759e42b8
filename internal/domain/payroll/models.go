package payroll

import "time"

// Employee carries identity plus the withholding configuration the
// calculator needs. Withholding rate pointers are nil when the employee has
// no explicit rate and the jurisdiction policy should apply.
type Employee struct {
	ID                      string     `json:"id"`
	FirstName               string     `json:"firstName"`
	LastName                string     `json:"lastName"`
	Email                   string     `json:"email"`
	Phone                   string     `json:"phone"`
	Address                 string     `json:"address"`
	State                   string     `json:"state"`
	BankAccount             string     `json:"bankAccount,omitempty"`
	HourlyRate              float64    `json:"hourlyRate"`
	FederalWithholdingRate  *float64   `json:"federalWithholdingRate,omitempty"`
	StateWithholdingRate    *float64   `json:"stateWithholdingRate,omitempty"`
	ExtraWithholdingFederal float64    `json:"extraWithholdingFederal"`
	ExtraWithholdingState   float64    `json:"extraWithholdingState"`
	ExemptFederal           bool       `json:"exemptFederal"`
	ExemptState             bool       `json:"exemptState"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

// Withholding is the mutable policy slice of an Employee. Updates replace
// the whole block.
type Withholding struct {
	FederalRate   *float64 `json:"federalRate"`
	StateRate     *float64 `json:"stateRate"`
	ExtraFederal  float64  `json:"extraFederal"`
	ExtraState    float64  `json:"extraState"`
	ExemptFederal bool     `json:"exemptFederal"`
	ExemptState   bool     `json:"exemptState"`
}

// PayrollRun is one computed paycheck. Rows are immutable once inserted;
// corrections are new runs. PayDate is carried from the paired paystub.
type PayrollRun struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employeeId"`
	PeriodStart      time.Time `json:"periodStart"`
	PeriodEnd        time.Time `json:"periodEnd"`
	PayDate          time.Time `json:"payDate"`
	Hours            float64   `json:"hours"`
	HourlyRate       float64   `json:"hourlyRate"`
	GrossPay         float64   `json:"grossPay"`
	FederalIncomeTax float64   `json:"federalIncomeTax"`
	StateIncomeTax   float64   `json:"stateIncomeTax"`
	SocialSecurity   float64   `json:"socialSecurity"`
	Medicare         float64   `json:"medicare"`
	TotalTaxes       float64   `json:"totalTaxes"`
	NetPay           float64   `json:"netPay"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Paystub is the document record paired 1:1 with a PayrollRun. FileURL is
// attached once after rendering and never changed again.
type Paystub struct {
	ID               string    `json:"id"`
	PayrollRunID     string    `json:"payrollRunId"`
	EmployeeID       string    `json:"employeeId"`
	PayDate          time.Time `json:"payDate"`
	VerificationCode string    `json:"verificationCode,omitempty"`
	FileURL          string    `json:"fileUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// TaxBreakdown is the calculator output. It is never persisted on its own;
// its fields are copied onto the PayrollRun.
type TaxBreakdown struct {
	FederalIncomeTax float64 `json:"federalIncomeTax"`
	StateIncomeTax   float64 `json:"stateIncomeTax"`
	SocialSecurity   float64 `json:"socialSecurity"`
	Medicare         float64 `json:"medicare"`
	TotalTaxes       float64 `json:"totalTaxes"`
	NetPay           float64 `json:"netPay"`
}

// YtdTotals are cumulative sums over one employee's runs from January 1 of
// the pay date's year through the pay date, inclusive.
type YtdTotals struct {
	Gross            float64 `json:"gross"`
	Net              float64 `json:"net"`
	FederalIncomeTax float64 `json:"federalIncomeTax"`
	StateIncomeTax   float64 `json:"stateIncomeTax"`
	SocialSecurity   float64 `json:"socialSecurity"`
	Medicare         float64 `json:"medicare"`
}

// EmployerBlock is the company heading rendered on every paystub.
type EmployerBlock struct {
	Name         string
	AddressLines []string
}

// RenderData is everything a renderer needs for one paystub.
type RenderData struct {
	Employer EmployerBlock
	Employee Employee
	Run      PayrollRun
	Stub     Paystub
	Ytd      YtdTotals
}

// RegisterRow is one line of the payroll register report.
type RegisterRow struct {
	EmployeeName     string
	PayDate          time.Time
	Hours            float64
	GrossPay         float64
	FederalIncomeTax float64
	StateIncomeTax   float64
	SocialSecurity   float64
	Medicare         float64
	TotalTaxes       float64
	NetPay           float64
}
