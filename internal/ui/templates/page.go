package templates

import (
	"context"
	"encoding/json"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"ecommerce-dashboard/internal/models"
)

const pageStyle = `
body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#1d2330}
header{background:#1d2330;color:#fff;padding:1rem 2rem}
main{max-width:1100px;margin:0 auto;padding:1rem 2rem}
section{background:#fff;border-radius:8px;padding:1rem 1.5rem;margin:1rem 0;box-shadow:0 1px 2px rgba(0,0,0,.06)}
.note{font-size:.9rem;color:#555}
.range{display:flex;gap:1rem;align-items:end;flex-wrap:wrap}
.range-error{color:#b3261e;min-height:1.2em}
.metrics{display:flex;gap:2rem}
.metric{display:flex;flex-direction:column}
.metric-label{font-size:.85rem;color:#555}
.metric-value{font-size:1.8rem;font-weight:600}
.chart svg{width:100%;height:auto}
.axis{font-size:12px;fill:#555}
.columns{display:grid;grid-template-columns:1fr 1fr;gap:1rem}
.bars{list-style:none;padding:0;margin:0}
.bars li{display:grid;grid-template-columns:10rem 1fr 6rem;gap:.5rem;align-items:center;margin:.25rem 0}
.bar{display:block;height:.9rem;background:#72BCD4;border-radius:2px}
.bars.green .bar{background:#66BB6A}
.bars.warm .bar{background:#F4A261}
.bar-value{text-align:right;font-variant-numeric:tabular-nums}
.empty{color:#777}
iframe{width:100%;height:500px;border:0}
footer{text-align:center;color:#777;font-size:.8rem;padding:2rem}
`

const pageTemplate = `
{{define "dashboard"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>E-Commerce Dashboard</title>
<style>` + pageStyle + `</style>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"></script>
</head>
<body>
<header><h1>E-Commerce Dashboard</h1></header>
<main>
<section id="daily">
<h2>Daily Orders</h2>
<p class="note"><strong>Note</strong>: the date range applies only to the totals and the daily orders chart. The other sections always cover the full dataset.</p>
<form class="range" method="get" action="/" data-signals="{{.Signals}}">
<label>From <input type="date" name="start" value="{{day .Range.Start}}" min="{{day .Bounds.Start}}" max="{{day .Bounds.End}}" data-bind-start-date data-on-change="@get('/sse/daily-orders')"></label>
<label>To <input type="date" name="end" value="{{day .Range.End}}" min="{{day .Bounds.Start}}" max="{{day .Bounds.End}}" data-bind-end-date data-on-change="@get('/sse/daily-orders')"></label>
<noscript><button type="submit">Apply</button></noscript>
</form>
{{template "range-error" ""}}
{{template "metrics" .Totals}}
{{template "daily-chart" .Chart}}
</section>
<section id="demographics">
<h2>Customer Demographics</h2>
<div class="columns">
<div><h3>Number of Customers by City</h3>{{template "bars" .Cities}}</div>
<div><h3>Number of Customers by State</h3>{{template "bars" .States}}</div>
</div>
</section>
<section id="top-products">
<h2>Top Products by Review Count with Average Rating 5.0</h2>
{{template "bars" .Products}}
</section>
<section id="top-regions">
<h2>Top Regions by Total Sales</h2>
{{template "bars" .Regions}}
</section>
<section id="best-customers">
<h2>Best Customers Based on RFM</h2>
<h3>By Recency (days)</h3>{{template "bars" .Recency}}
<h3>By Frequency</h3>{{template "bars" .Frequency}}
<h3>By Monetary</h3>{{template "bars" .Monetary}}
</section>
<section id="spending-groups">
<h2>Customer Spending Group</h2>
{{template "bars" .Spending}}
</section>
{{- if .MapHTML}}
<section id="map">
<h2>Customer Locations from Top Sales</h2>
<iframe title="Customer locations" sandbox="allow-scripts" srcdoc="{{.MapHTML}}"></iframe>
</section>
{{- end}}
</main>
<footer>E-Commerce Dashboard</footer>
</body>
</html>{{end}}
`

var dashboardTemplates = template.Must(template.New("ui").Funcs(funcs).Parse(sectionTemplates + pageTemplate))

type pageView struct {
	Range     models.DateRange
	Bounds    models.DateRange
	Signals   string
	Totals    models.Totals
	Chart     chartView
	Cities    barList
	States    barList
	Products  barList
	Regions   barList
	Recency   barList
	Frequency barList
	Monetary  barList
	Spending  barList
	MapHTML   string
}

func newPageView(d models.Dashboard) (pageView, error) {
	signals, err := json.Marshal(map[string]string{
		"startDate": d.Range.Start.Format(models.DateLayout),
		"endDate":   d.Range.End.Format(models.DateLayout),
	})
	if err != nil {
		return pageView{}, err
	}

	return pageView{
		Range:     d.Range,
		Bounds:    d.Bounds,
		Signals:   string(signals),
		Totals:    d.Totals,
		Chart:     newChartView(d.Daily),
		Cities:    cityBars(d.TopCities),
		States:    stateBars(d.TopStates),
		Products:  productBars(d.TopProducts),
		Regions:   regionBars(d.TopRegions),
		Recency:   recencyBars(d.BestCustomers.ByRecency),
		Frequency: frequencyBars(d.BestCustomers.ByFrequency),
		Monetary:  monetaryBars(d.BestCustomers.ByMonetary),
		Spending:  spendingBars(d.SpendingGroups),
		MapHTML:   d.MapHTML,
	}, nil
}

// Dashboard renders the full page for one snapshot. The map fragment is
// embedded in a sandboxed frame so its scripts cannot reach the page.
func Dashboard(d models.Dashboard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		view, err := newPageView(d)
		if err != nil {
			return err
		}
		return dashboardTemplates.ExecuteTemplate(w, "dashboard", view)
	})
}
