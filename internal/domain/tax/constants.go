package tax

// Statutory payroll tax rates. These apply to every paycheck and are not
// configurable per employee.
const (
	SocialSecurityRate = 0.062
	MedicareRate       = 0.0145
)

// Fallback withholding rates for jurisdictions without an override entry.
const (
	DefaultFederalRate = 0.18
	DefaultStateRate   = 0.05
)
