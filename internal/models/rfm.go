package models

import "github.com/shopspring/decimal"

type SpendingGroup string

const (
	Unclassified    SpendingGroup = ""
	LowSpender      SpendingGroup = "Low Spender"
	MediumSpender   SpendingGroup = "Medium Spender"
	HighSpender     SpendingGroup = "High Spender"
	VeryHighSpender SpendingGroup = "Very High Spender"
)

// SpendingGroups lists the classified groups in ascending spend order.
var SpendingGroups = []SpendingGroup{LowSpender, MediumSpender, HighSpender, VeryHighSpender}

// RFM is one precomputed recency/frequency/monetary row. Recency is in
// days, smaller is more recent.
type RFM struct {
	CustomerUniqueID string          `json:"customer_unique_id"`
	Recency          int             `json:"recency"`
	Frequency        int             `json:"frequency"`
	Monetary         decimal.Decimal `json:"monetary"`
	SpendingGroup    SpendingGroup   `json:"spending_group,omitempty"`
}

type SpendingGroupCount struct {
	Group SpendingGroup `json:"spending_group"`
	Count int           `json:"customer_count"`
}

// BestCustomers holds the top customers along each RFM axis.
type BestCustomers struct {
	ByRecency   []RFM `json:"by_recency"`
	ByFrequency []RFM `json:"by_frequency"`
	ByMonetary  []RFM `json:"by_monetary"`
}
