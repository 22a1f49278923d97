package dispatch

import (
	"bytes"
	"html/template"
)

var promoAssignedTmpl = template.Must(template.New("promo_assigned").Parse(`<html>
<body>
  <h2>New promo assignment</h2>
  <p><strong>{{.AccountName}}</strong> has been enrolled in <strong>{{.PromoName}}</strong>.</p>
  <ul>
    <li>Target: {{.TargetUnits}} units</li>
    {{if .PaymentTerms}}<li>Terms: {{.PaymentTerms}}</li>{{end}}
    {{if .Territories}}<li>Territory: {{range $i, $t := .Territories}}{{if $i}}, {{end}}{{$t}}{{end}}</li>{{end}}
    <li>Assigned by: {{.AssignedBy}}</li>
  </ul>
</body>
</html>`))

var weeklySummaryTmpl = template.Must(template.New("weekly_summary").Parse(`<html>
<body>
  <h2>Weekly promo summary{{if .QuarterName}}: {{.QuarterName}}{{end}}</h2>
  <p>Hi {{.RepName}},</p>
  <p>{{.ElapsedPct}}% of the quarter has elapsed with {{.DaysLeft}} days left.</p>
  {{if .Rows}}
  <table border="1" cellpadding="4" cellspacing="0">
    <tr><th>Account</th><th>Promo</th><th>Units</th><th>Target</th><th>Progress</th><th>Pace</th></tr>
    {{range .Rows}}
    <tr{{if .Behind}} style="background:#ffe9e9"{{end}}>
      <td>{{.AccountName}}</td>
      <td>{{.PromoName}}</td>
      <td>{{.UnitsSold}}</td>
      <td>{{.TargetUnits}}</td>
      <td>{{.ProgressPct}}%</td>
      <td>{{.Pace}}{{if .Behind}} &#9888;{{end}}</td>
    </tr>
    {{end}}
  </table>
  {{else}}
  <p>No accounts in your territories have promo assignments this week.</p>
  {{end}}
</body>
</html>`))

func renderPromoAssigned(event PromoAssignedEvent) (string, error) {
	var buf bytes.Buffer
	if err := promoAssignedTmpl.Execute(&buf, event); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderWeeklySummary(event WeeklySummaryEvent) (string, error) {
	var buf bytes.Buffer
	if err := weeklySummaryTmpl.Execute(&buf, event); err != nil {
		return "", err
	}
	return buf.String(), nil
}
