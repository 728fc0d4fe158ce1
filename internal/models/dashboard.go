package models

// Dashboard is everything one render pass of the page needs. Only Daily
// and Totals depend on Range; the other sections cover the full dataset.
type Dashboard struct {
	Range          DateRange            `json:"range"`
	Bounds         DateRange            `json:"bounds"`
	Daily          []DailyOrders        `json:"daily_orders"`
	Totals         Totals               `json:"totals"`
	TopCities      []CityCount          `json:"top_cities"`
	TopStates      []StateCount         `json:"top_states"`
	TopProducts    []TopProduct         `json:"top_products"`
	TopRegions     []TopRegion          `json:"top_regions"`
	BestCustomers  BestCustomers        `json:"best_customers"`
	SpendingGroups []SpendingGroupCount `json:"spending_groups"`
	MapHTML        string               `json:"-"`
}
