package templates

import (
	"math"
	"strconv"
	"strings"

	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/services"
)

const (
	chartWidth   = 960
	chartHeight  = 320
	chartPadding = 32
)

type chartDot struct {
	X, Y  float64
	Day   string
	Count int
}

type chartView struct {
	Empty     bool
	Width     int
	Height    int
	BaselineY int
	RightX    int
	MaxCount  int
	FirstDay  string
	LastDay   string
	Points    string
	Dots      []chartDot
}

func newChartView(daily []models.DailyOrders) chartView {
	if len(daily) == 0 {
		return chartView{Empty: true}
	}

	v := chartView{
		Width:     chartWidth,
		Height:    chartHeight,
		BaselineY: chartHeight - 4,
		RightX:    chartWidth - 4,
		FirstDay:  daily[0].Date.Format(models.DateLayout),
		LastDay:   daily[len(daily)-1].Date.Format(models.DateLayout),
		Dots:      make([]chartDot, 0, len(daily)),
	}
	for _, d := range daily {
		v.MaxCount = max(v.MaxCount, d.OrderCount)
	}

	points := make([]string, 0, len(daily))
	for i, d := range daily {
		x, y := chartPoint(i, len(daily), d.OrderCount, v.MaxCount)
		points = append(points, strconv.FormatFloat(x, 'f', 1, 64)+","+strconv.FormatFloat(y, 'f', 1, 64))
		v.Dots = append(v.Dots, chartDot{X: x, Y: y, Day: d.Date.Format(models.DateLayout), Count: d.OrderCount})
	}
	v.Points = strings.Join(points, " ")

	return v
}

func chartPoint(i, n, count, maxCount int) (float64, float64) {
	inner := float64(chartWidth - 2*chartPadding)
	x := float64(chartWidth) / 2
	if n > 1 {
		x = chartPadding + inner*float64(i)/float64(n-1)
	}

	plotHeight := float64(chartHeight - 2*chartPadding)
	y := float64(chartHeight - chartPadding)
	if maxCount > 0 {
		y -= plotHeight * float64(count) / float64(maxCount)
	}

	return math.Round(x*10) / 10, math.Round(y*10) / 10
}

type bar struct {
	Label   string
	Value   float64
	Display string
	Pct     float64
}

type barList struct {
	Class string
	Bars  []bar
}

// newBarList scales every bar against the largest value.
func newBarList(class string, bars []bar) barList {
	top := 0.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	for i := range bars {
		if top > 0 {
			bars[i].Pct = math.Round(bars[i].Value/top*1000) / 10
		}
	}
	return barList{Class: class, Bars: bars}
}

// recencyScore grows as recency shrinks, so the freshest customer gets
// the longest bar. Negative recency counts as today.
func recencyScore(days int) float64 {
	return 1 / float64(max(days, 0)+1)
}

func cityBars(rows []models.CityCount) barList {
	bars := make([]bar, 0, len(rows))
	for _, c := range rows {
		bars = append(bars, bar{Label: c.City, Value: float64(c.CustomerCount), Display: FormatCount(c.CustomerCount)})
	}
	return newBarList("blue", bars)
}

func stateBars(rows []models.StateCount) barList {
	bars := make([]bar, 0, len(rows))
	for _, s := range rows {
		bars = append(bars, bar{Label: s.State, Value: float64(s.CustomerCount), Display: FormatCount(s.CustomerCount)})
	}
	return newBarList("green", bars)
}

func productBars(rows []models.TopProduct) barList {
	bars := make([]bar, 0, len(rows))
	for _, p := range rows {
		bars = append(bars, bar{Label: p.Category, Value: float64(p.ReviewCount), Display: FormatCount(p.ReviewCount)})
	}
	return newBarList("warm", bars)
}

func regionBars(rows []models.TopRegion) barList {
	bars := make([]bar, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, bar{Label: r.City, Value: r.TotalSales.InexactFloat64(), Display: FormatUSD(r.TotalSales)})
	}
	return newBarList("warm", bars)
}

func recencyBars(rows []models.RFM) barList {
	bars := make([]bar, 0, len(rows))
	for _, r := range rows {
		days := max(r.Recency, 0)
		bars = append(bars, bar{Label: services.TruncateID(r.CustomerUniqueID), Value: recencyScore(r.Recency), Display: FormatCount(days) + " days"})
	}
	return newBarList("blue", bars)
}

func frequencyBars(rows []models.RFM) barList {
	bars := make([]bar, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, bar{Label: services.TruncateID(r.CustomerUniqueID), Value: float64(r.Frequency), Display: FormatCount(r.Frequency)})
	}
	return newBarList("blue", bars)
}

func monetaryBars(rows []models.RFM) barList {
	bars := make([]bar, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, bar{Label: services.TruncateID(r.CustomerUniqueID), Value: r.Monetary.InexactFloat64(), Display: FormatUSD(r.Monetary)})
	}
	return newBarList("blue", bars)
}

func spendingBars(rows []models.SpendingGroupCount) barList {
	bars := make([]bar, 0, len(rows))
	for _, c := range rows {
		bars = append(bars, bar{Label: string(c.Group), Value: float64(c.Count), Display: FormatCount(c.Count)})
	}
	return newBarList("green", bars)
}
