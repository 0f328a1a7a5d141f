package payroll

import (
	"html/template"
	"io"

	"github.com/hazemadel/staffdeck-be/internal/ledger"
	"github.com/hazemadel/staffdeck-be/internal/models"
)

// payslipTemplate is the printable document handed to the agency office.
// Styling is intentionally minimal so it prints cleanly.
const payslipTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Payslip - {{.Server.Name}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
.summary { margin-top: 1.5rem; }
.muted { color: #777; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Payslip</h1>
<p>
<strong>{{.Server.Name}}</strong><br>
{{if .Server.Phone}}{{.Server.Phone}}<br>{{end}}
{{if .Server.Email}}{{.Server.Email}}<br>{{end}}
</p>
<p>
Pay period:
{{if .PeriodStart.IsZero}}beginning{{else}}{{.PeriodStart.Format "2006-01-02"}}{{end}}
&ndash;
{{if .PeriodEnd.IsZero}}today{{else}}{{.PeriodEnd.Format "2006-01-02"}}{{end}}
</p>
<table>
<tr><th>Event</th><th>Date</th><th>Due</th><th>Paid</th><th>Status</th><th>Method</th></tr>
{{range .Entries}}
<tr>
<td>{{.EventName}}</td>
<td>{{.EventDate.Format "2006-01-02"}}</td>
<td>{{currency .AmountDue}}</td>
<td>{{currency .AmountPaid}}</td>
<td>{{if .IsPaid}}paid{{else}}pending{{end}}</td>
<td>{{.PaymentMethod}}</td>
</tr>
{{else}}
<tr><td colspan="6">No events in this period.</td></tr>
{{end}}
</table>
<div class="summary">
<p>Events worked: {{.Summary.TotalEvents}}</p>
<p>Total due: {{currency .Summary.TotalEarnings}}</p>
<p>Total paid: {{currency .Summary.TotalPaid}} ({{printf "%.0f" (percent .Summary.TotalPaid .Summary.TotalEarnings)}}%)</p>
<p>Total pending: {{currency .Summary.TotalPending}}</p>
</div>
<p class="muted">Generated {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>
</body>
</html>
`

var payslipTmpl = template.Must(template.New("payslip").Funcs(template.FuncMap{
	"currency": ledger.FormatCurrency,
	"percent":  ProgressPercent,
}).Parse(payslipTemplate))

// RenderPayslipHTML writes the printable payslip document for the given data.
func RenderPayslipHTML(w io.Writer, data models.PayslipData) error {
	return payslipTmpl.Execute(w, data)
}
