package services

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"ecommerce-dashboard/internal/models"
)

const truncatedIDMaxLength = 8

var (
	lowSpendCeiling    = decimal.NewFromInt(100)
	mediumSpendCeiling = decimal.NewFromInt(500)
	highSpendCeiling   = decimal.NewFromInt(1000)
)

// FilterOrders keeps the rows purchased on any day of r, both ends
// included. The input is not modified.
func FilterOrders(orders []models.Order, r models.DateRange) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if r.Contains(o.PurchasedAt) {
			out = append(out, o)
		}
	}
	return out
}

// DailyOrders groups rows by purchase day. The series covers every day
// from the first to the last observed purchase; days without orders are
// present with zero count and revenue. OrderCount counts distinct order
// ids, Revenue sums line item prices.
func DailyOrders(orders []models.Order) []models.DailyOrders {
	if len(orders) == 0 {
		return []models.DailyOrders{}
	}

	type bucket struct {
		ids     map[string]struct{}
		revenue decimal.Decimal
	}

	buckets := make(map[int64]*bucket)
	first := models.Day(orders[0].PurchasedAt)
	last := first

	for _, o := range orders {
		day := models.Day(o.PurchasedAt)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}

		b := buckets[day.Unix()]
		if b == nil {
			b = &bucket{ids: make(map[string]struct{})}
			buckets[day.Unix()] = b
		}
		b.ids[o.OrderID] = struct{}{}
		b.revenue = b.revenue.Add(o.Price)
	}

	out := make([]models.DailyOrders, 0, int(last.Sub(first).Hours()/24)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		row := models.DailyOrders{Date: day, Revenue: decimal.Zero}
		if b := buckets[day.Unix()]; b != nil {
			row.OrderCount = len(b.ids)
			row.Revenue = b.revenue
		}
		out = append(out, row)
	}

	return out
}

// ByState counts distinct customer ids per state, largest first.
func ByState(customers []models.Customer) []models.StateCount {
	counts := countDistinct(customers, func(c models.Customer) string { return c.State })

	out := make([]models.StateCount, 0, len(counts))
	for state, n := range counts {
		out = append(out, models.StateCount{State: state, CustomerCount: n})
	}
	slices.SortFunc(out, func(a, b models.StateCount) int {
		return cmp.Or(cmp.Compare(b.CustomerCount, a.CustomerCount), cmp.Compare(a.State, b.State))
	})
	return out
}

// ByCity counts distinct customer ids per city, largest first.
func ByCity(customers []models.Customer) []models.CityCount {
	counts := countDistinct(customers, func(c models.Customer) string { return c.City })

	out := make([]models.CityCount, 0, len(counts))
	for city, n := range counts {
		out = append(out, models.CityCount{City: city, CustomerCount: n})
	}
	slices.SortFunc(out, func(a, b models.CityCount) int {
		return cmp.Or(cmp.Compare(b.CustomerCount, a.CustomerCount), cmp.Compare(a.City, b.City))
	})
	return out
}

func countDistinct(customers []models.Customer, key func(models.Customer) string) map[string]int {
	seen := make(map[string]map[string]struct{})
	for _, c := range customers {
		k := key(c)
		if seen[k] == nil {
			seen[k] = make(map[string]struct{})
		}
		seen[k][c.CustomerID] = struct{}{}
	}

	counts := make(map[string]int, len(seen))
	for k, ids := range seen {
		counts[k] = len(ids)
	}
	return counts
}

// ClassifySpending buckets a monetary value into right-closed intervals
// (0,100], (100,500], (500,1000] and (1000,inf). Values <= 0 are
// Unclassified.
func ClassifySpending(monetary decimal.Decimal) models.SpendingGroup {
	switch {
	case !monetary.IsPositive():
		return models.Unclassified
	case monetary.LessThanOrEqual(lowSpendCeiling):
		return models.LowSpender
	case monetary.LessThanOrEqual(mediumSpendCeiling):
		return models.MediumSpender
	case monetary.LessThanOrEqual(highSpendCeiling):
		return models.HighSpender
	default:
		return models.VeryHighSpender
	}
}

// SpendingGroups returns a copy of rfm with SpendingGroup filled in.
func SpendingGroups(rfm []models.RFM) []models.RFM {
	out := make([]models.RFM, len(rfm))
	for i, r := range rfm {
		r.SpendingGroup = ClassifySpending(r.Monetary)
		out[i] = r
	}
	return out
}

// SpendingGroupCounts counts classified rows per group in ascending spend
// order. Every group is present, unclassified rows are left out.
func SpendingGroupCounts(rfm []models.RFM) []models.SpendingGroupCount {
	counts := make(map[models.SpendingGroup]int, len(models.SpendingGroups))
	for _, r := range rfm {
		group := r.SpendingGroup
		if group == models.Unclassified {
			group = ClassifySpending(r.Monetary)
		}
		counts[group]++
	}

	out := make([]models.SpendingGroupCount, 0, len(models.SpendingGroups))
	for _, g := range models.SpendingGroups {
		out = append(out, models.SpendingGroupCount{Group: g, Count: counts[g]})
	}
	return out
}

func ComputeTotals(daily []models.DailyOrders) models.Totals {
	t := models.Totals{Revenue: decimal.Zero}
	for _, d := range daily {
		t.Orders += d.OrderCount
		t.Revenue = t.Revenue.Add(d.Revenue)
	}
	return t
}

// BestCustomers ranks rfm rows by each axis: most recent, most frequent
// and highest spend. Ties keep input order.
func BestCustomers(rfm []models.RFM, n int) models.BestCustomers {
	byRecency := slices.Clone(rfm)
	slices.SortStableFunc(byRecency, func(a, b models.RFM) int {
		return cmp.Compare(a.Recency, b.Recency)
	})

	byFrequency := slices.Clone(rfm)
	slices.SortStableFunc(byFrequency, func(a, b models.RFM) int {
		return cmp.Compare(b.Frequency, a.Frequency)
	})

	byMonetary := slices.Clone(rfm)
	slices.SortStableFunc(byMonetary, func(a, b models.RFM) int {
		return b.Monetary.Cmp(a.Monetary)
	})

	return models.BestCustomers{
		ByRecency:   Limit(byRecency, n),
		ByFrequency: Limit(byFrequency, n),
		ByMonetary:  Limit(byMonetary, n),
	}
}

// Limit returns at most the first n elements of s. A negative n means no
// limit.
func Limit[T any](s []T, n int) []T {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

// TruncateID shortens long customer ids for chart labels.
func TruncateID(id string) string {
	if len(id) <= truncatedIDMaxLength {
		return id
	}
	return id[:truncatedIDMaxLength] + "..."
}
