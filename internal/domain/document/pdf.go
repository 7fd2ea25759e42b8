package document

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"nwfpay/internal/domain/payroll"
)

// PDFRenderer draws the paystub directly as vector text and rules.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(_ context.Context, data payroll.RenderData) ([]byte, error) {
	view := buildStubView(data)

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(120, 7, view.EmployerName)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Earnings Statement", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range view.EmployerAddress {
		pdf.Cell(0, 4.5, line)
		pdf.Ln(4.5)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 5, view.EmployeeName)
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 4.5, view.Address)
	pdf.Ln(4.5)
	pdf.Cell(0, 4.5, fmt.Sprintf("Employee ID: %s", view.EmployeeID))
	pdf.Ln(6)
	pdf.Cell(0, 4.5, fmt.Sprintf("Pay Period: %s - %s    Pay Date: %s",
		view.PeriodStart, view.PeriodEnd, view.PayDate))
	pdf.Ln(8)

	// Earnings table.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(55, 6, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 6, "Hours", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 6, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 6, "Current", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 6, "YTD", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(55, 6, "Regular", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, view.Hours, "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, view.Rate, "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, view.GrossCurrent, "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, view.GrossYtd, "1", 1, "R", false, 0, "")
	pdf.Ln(5)

	// Deductions table.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(105, 6, "Deductions", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 6, "Current", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 6, "YTD", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range view.Deductions {
		pdf.CellFormat(105, 6, line.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, line.Current, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, line.Ytd, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(105, 7, "Net Pay", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, view.NetCurrent, "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, view.NetYtd, "1", 1, "R", true, 0, "")
	pdf.Ln(8)

	if view.BankAccount != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.Cell(0, 4, fmt.Sprintf("Deposited to account %s", view.BankAccount))
		pdf.Ln(6)
	}

	// Verification QR and the low-opacity forensic tag.
	if view.Code != "" {
		png, err := qrcode.Encode(view.Code, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("encode verification qr: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("verification-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("verification-qr", 175, 245, 22, 22, false, opts, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(15, 262)
		pdf.Cell(0, 4, fmt.Sprintf("Verification code: %s", view.Code))
	}
	pdf.SetAlpha(0.15, "Normal")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(15, 230)
	pdf.Cell(0, 10, view.Tag)
	pdf.SetAlpha(1.0, "Normal")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("compose paystub pdf: %w", err)
	}
	return buf.Bytes(), nil
}
