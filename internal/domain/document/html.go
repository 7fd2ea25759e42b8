package document

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"nwfpay/internal/domain/payroll"
)

// Backend prints markup to PDF bytes. The concrete implementation is a
// headless browser; the renderer treats it as a black box.
type Backend interface {
	PrintPDF(ctx context.Context, markup string) ([]byte, error)
}

var ErrNoBackend = errors.New("no rendering backend configured")

// HTMLRenderer composes the paystub as styled markup and hands it to the
// backend for printing. The layout mirrors the vector renderer.
type HTMLRenderer struct {
	backend Backend
	tmpl    *template.Template
}

func NewHTMLRenderer(backend Backend) *HTMLRenderer {
	return &HTMLRenderer{
		backend: backend,
		tmpl:    template.Must(template.New("paystub").Parse(paystubTemplate)),
	}
}

func (r *HTMLRenderer) Render(ctx context.Context, data payroll.RenderData) ([]byte, error) {
	if r.backend == nil {
		return nil, ErrNoBackend
	}
	markup, err := r.Markup(data)
	if err != nil {
		return nil, err
	}
	pdf, err := r.backend.PrintPDF(ctx, markup)
	if err != nil {
		return nil, fmt.Errorf("print paystub markup: %w", err)
	}
	return pdf, nil
}

// Markup renders the paystub template without invoking the backend.
func (r *HTMLRenderer) Markup(data payroll.RenderData) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, buildStubView(data)); err != nil {
		return "", fmt.Errorf("execute paystub template: %w", err)
	}
	return sb.String(), nil
}

const paystubTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; margin: 0; }
  .header { display: flex; justify-content: space-between; align-items: baseline; }
  .employer { font-size: 16px; font-weight: bold; }
  .title { font-size: 14px; font-weight: bold; }
  .address, .meta { color: #444; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th, td { border: 1px solid #999; padding: 4px 6px; }
  th { background: #ebebeb; text-align: left; }
  td.amount, th.amount { text-align: right; }
  .net td { font-weight: bold; background: #ebebeb; }
  .tag { margin-top: 32px; font-size: 28px; font-weight: bold; opacity: 0.15; }
  .code { font-size: 9px; color: #444; }
</style>
</head>
<body>
<div class="header">
  <span class="employer">{{.EmployerName}}</span>
  <span class="title">Earnings Statement</span>
</div>
{{range .EmployerAddress}}<div class="address">{{.}}</div>{{end}}
<p>
  <strong>{{.EmployeeName}}</strong><br>
  {{.Address}}<br>
  Employee ID: {{.EmployeeID}}
</p>
<p class="meta">Pay Period: {{.PeriodStart}} - {{.PeriodEnd}} &nbsp;&nbsp; Pay Date: {{.PayDate}}</p>
<table>
  <tr><th>Earnings</th><th class="amount">Hours</th><th class="amount">Rate</th><th class="amount">Current</th><th class="amount">YTD</th></tr>
  <tr><td>Regular</td><td class="amount">{{.Hours}}</td><td class="amount">{{.Rate}}</td><td class="amount">{{.GrossCurrent}}</td><td class="amount">{{.GrossYtd}}</td></tr>
</table>
<table>
  <tr><th>Deductions</th><th class="amount">Current</th><th class="amount">YTD</th></tr>
  {{range .Deductions}}<tr><td>{{.Label}}</td><td class="amount">{{.Current}}</td><td class="amount">{{.Ytd}}</td></tr>
  {{end}}<tr class="net"><td>Net Pay</td><td class="amount">{{.NetCurrent}}</td><td class="amount">{{.NetYtd}}</td></tr>
</table>
{{if .BankAccount}}<p class="meta">Deposited to account {{.BankAccount}}</p>{{end}}
{{if .Code}}<p class="code">Verification code: {{.Code}}</p>{{end}}
<div class="tag">{{.Tag}}</div>
</body>
</html>`
