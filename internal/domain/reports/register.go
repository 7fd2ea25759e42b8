// Package reports builds admin exports over payroll history.
package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"nwfpay/internal/domain/payroll"
)

const registerSheet = "Register"

var registerHeader = []string{
	"Employee", "Pay Date", "Hours", "Gross Pay",
	"Federal Income Tax", "State Income Tax", "Social Security", "Medicare",
	"Total Taxes", "Net Pay",
}

// BuildRegister renders the payroll register as an XLSX workbook: one line
// per run plus a totals row.
func BuildRegister(rows []payroll.RegisterRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(registerSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range registerHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(registerSheet, cell, title); err != nil {
			return nil, err
		}
	}

	var totals payroll.RegisterRow
	for i, row := range rows {
		values := []any{
			row.EmployeeName,
			row.PayDate.Format("2006-01-02"),
			row.Hours,
			row.GrossPay,
			row.FederalIncomeTax,
			row.StateIncomeTax,
			row.SocialSecurity,
			row.Medicare,
			row.TotalTaxes,
			row.NetPay,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(registerSheet, cell, value); err != nil {
				return nil, err
			}
		}
		totals.Hours += row.Hours
		totals.GrossPay += row.GrossPay
		totals.FederalIncomeTax += row.FederalIncomeTax
		totals.StateIncomeTax += row.StateIncomeTax
		totals.SocialSecurity += row.SocialSecurity
		totals.Medicare += row.Medicare
		totals.TotalTaxes += row.TotalTaxes
		totals.NetPay += row.NetPay
	}

	totalRow := len(rows) + 2
	totalValues := []any{
		"Total", "", totals.Hours, totals.GrossPay,
		totals.FederalIncomeTax, totals.StateIncomeTax, totals.SocialSecurity,
		totals.Medicare, totals.TotalTaxes, totals.NetPay,
	}
	for col, value := range totalValues {
		cell, err := excelize.CoordinatesToCellName(col+1, totalRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(registerSheet, cell, value); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write register workbook: %w", err)
	}
	return buf.Bytes(), nil
}
