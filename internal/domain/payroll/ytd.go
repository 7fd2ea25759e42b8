package payroll

import "time"

// YearStart returns midnight on January 1 of the given date's year, in the
// same location.
func YearStart(asOf time.Time) time.Time {
	return time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
}

// Accumulate folds prior runs into year-to-date totals as of a pay date.
// Runs dated outside [January 1, asOf] are skipped; missing amounts on a run
// contribute zero. Runs are summed in slice order, which the store fixes as
// pay date ascending, so repeated aggregation over an unchanged history is
// numerically identical.
func Accumulate(runs []PayrollRun, asOf time.Time) YtdTotals {
	from := YearStart(asOf)
	var totals YtdTotals
	for _, run := range runs {
		if run.PayDate.Before(from) || run.PayDate.After(asOf) {
			continue
		}
		totals.Gross += Sanitize(run.GrossPay)
		totals.Net += Sanitize(run.NetPay)
		totals.FederalIncomeTax += Sanitize(run.FederalIncomeTax)
		totals.StateIncomeTax += Sanitize(run.StateIncomeTax)
		totals.SocialSecurity += Sanitize(run.SocialSecurity)
		totals.Medicare += Sanitize(run.Medicare)
	}
	return totals
}
