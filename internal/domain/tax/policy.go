package tax

import "strings"

// Rates holds the withholding fractions resolved for a jurisdiction.
type Rates struct {
	Federal float64 `json:"federal"`
	State   float64 `json:"state"`
}

// override may replace either rate independently. A nil field inherits the
// default rate, not zero.
type override struct {
	federal *float64
	state   *float64
}

var zeroRate = 0.0

// States without a personal income tax withhold no state amount. All other
// jurisdictions use the defaults.
var jurisdictionOverrides = map[string]override{
	"AK": {state: &zeroRate},
	"FL": {state: &zeroRate},
	"NH": {state: &zeroRate},
	"NV": {state: &zeroRate},
	"SD": {state: &zeroRate},
	"TN": {state: &zeroRate},
	"TX": {state: &zeroRate},
	"WA": {state: &zeroRate},
	"WY": {state: &zeroRate},
}

// Resolve returns the withholding rates for a jurisdiction code. Codes are
// matched case-insensitively; unknown or empty codes resolve to the defaults.
// There is no error path.
func Resolve(jurisdiction string) Rates {
	rates := Rates{Federal: DefaultFederalRate, State: DefaultStateRate}
	code := strings.ToUpper(strings.TrimSpace(jurisdiction))
	if code == "" {
		return rates
	}
	entry, ok := jurisdictionOverrides[code]
	if !ok {
		return rates
	}
	if entry.federal != nil {
		rates.Federal = *entry.federal
	}
	if entry.state != nil {
		rates.State = *entry.state
	}
	return rates
}
