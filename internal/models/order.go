package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one (order, line item) pair produced by joining the orders
// table with the order items table. An order with three items appears
// three times.
type Order struct {
	OrderID     string          `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	PurchasedAt time.Time       `json:"order_purchase_timestamp"`
	OrderItemID string          `json:"order_item_id,omitempty"`
	ProductID   string          `json:"product_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

type Customer struct {
	CustomerID       string `json:"customer_id"`
	CustomerUniqueID string `json:"customer_unique_id,omitempty"`
	City             string `json:"customer_city"`
	State            string `json:"customer_state"`
}

type DailyOrders struct {
	Date       time.Time       `json:"date"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type StateCount struct {
	State         string `json:"state"`
	CustomerCount int    `json:"customer_count"`
}

type CityCount struct {
	City          string `json:"city"`
	CustomerCount int    `json:"customer_count"`
}

type TopProduct struct {
	Category    string `json:"product_category_name"`
	ReviewCount int    `json:"review_count"`
}

type TopRegion struct {
	City       string          `json:"customer_city"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// Totals are the headline metrics shown above the daily orders chart.
type Totals struct {
	Orders  int             `json:"total_orders"`
	Revenue decimal.Decimal `json:"total_revenue"`
}
