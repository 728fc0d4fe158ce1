package templates

import (
	"context"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"ecommerce-dashboard/internal/models"
)

var funcs = template.FuncMap{
	"count": FormatCount,
	"usd":   FormatUSD,
	"day":   func(t time.Time) string { return t.Format(models.DateLayout) },
}

const sectionTemplates = `
{{define "metrics"}}<div id="metrics" class="metrics">
<div class="metric"><span class="metric-label">Total Orders</span><span class="metric-value">{{count .Orders}}</span></div>
<div class="metric"><span class="metric-label">Total Revenue</span><span class="metric-value">{{usd .Revenue}}</span></div>
</div>{{end}}

{{define "daily-chart"}}<div id="daily-chart" class="chart">
{{- if .Empty}}<p class="empty">No orders in the selected range.</p>
{{- else}}<svg viewBox="0 0 {{.Width}} {{.Height}}" role="img" aria-label="Order count per day">
<text x="4" y="16" class="axis">{{count .MaxCount}}</text>
<text x="4" y="{{.BaselineY}}" class="axis">{{.FirstDay}}</text>
<text x="{{.RightX}}" y="{{.BaselineY}}" class="axis" text-anchor="end">{{.LastDay}}</text>
<polyline fill="none" stroke="#90CAF9" stroke-width="2" points="{{.Points}}"/>
{{range .Dots}}<circle cx="{{printf "%.1f" .X}}" cy="{{printf "%.1f" .Y}}" r="2.5" fill="#90CAF9"><title>{{.Day}}: {{count .Count}}</title></circle>
{{end}}</svg>
{{- end}}</div>{{end}}

{{define "range-error"}}<div id="range-error" class="range-error" role="alert">{{.}}</div>{{end}}

{{define "bars"}}
{{- if not .Bars}}<p class="empty">No data.</p>
{{- else}}<ul class="bars {{.Class}}">
{{range .Bars}}<li><span class="bar-label">{{.Label}}</span><span class="bar" style="width:{{printf "%.1f" .Pct}}%"></span><span class="bar-value">{{.Display}}</span></li>
{{end}}</ul>
{{- end}}{{end}}
`

// execute wraps one named template as a component.
func execute(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return dashboardTemplates.ExecuteTemplate(w, name, data)
	})
}

// Metrics renders the Total Orders and Total Revenue cards.
func Metrics(t models.Totals) templ.Component {
	return execute("metrics", t)
}

// DailyChart renders the order count series as an inline SVG line chart.
// An empty series renders a placeholder instead of an empty plot.
func DailyChart(daily []models.DailyOrders) templ.Component {
	return execute("daily-chart", newChartView(daily))
}

// RangeError renders the inline date range message. An empty message
// clears it.
func RangeError(message string) templ.Component {
	return execute("range-error", message)
}
