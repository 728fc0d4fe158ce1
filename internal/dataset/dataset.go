// Package dataset loads the static e-commerce tables the dashboard is
// built from. A Dataset is constructed once at startup and never mutated,
// so it can be shared by every request without locking.
package dataset

import (
	"time"

	"ecommerce-dashboard/internal/models"
)

// Paths locates the input files. MapFile is optional.
type Paths struct {
	Orders      string
	OrderItems  string
	Customers   string
	RFM         string
	TopProducts string
	TopRegions  string
	MapFile     string
}

type Dataset struct {
	orders      []models.Order
	customers   []models.Customer
	rfm         []models.RFM
	topProducts []models.TopProduct
	topRegions  []models.TopRegion
	mapHTML     string
	bounds      models.DateRange
	loadedAt    time.Time
}

// New builds a Dataset from already-joined orders. It is used by tests
// and by callers that assemble tables themselves.
func New(orders []models.Order, customers []models.Customer, rfm []models.RFM,
	topProducts []models.TopProduct, topRegions []models.TopRegion, mapHTML string) *Dataset {

	return &Dataset{
		orders:      orders,
		customers:   customers,
		rfm:         rfm,
		topProducts: topProducts,
		topRegions:  topRegions,
		mapHTML:     mapHTML,
		bounds:      orderBounds(orders),
		loadedAt:    time.Now(),
	}
}

// Orders returns the joined order rows. Callers must not modify the slice.
func (d *Dataset) Orders() []models.Order { return d.orders }

func (d *Dataset) Customers() []models.Customer { return d.customers }

func (d *Dataset) RFM() []models.RFM { return d.rfm }

func (d *Dataset) TopProducts() []models.TopProduct { return d.topProducts }

func (d *Dataset) TopRegions() []models.TopRegion { return d.topRegions }

// MapHTML is the precomputed map fragment, embedded verbatim.
func (d *Dataset) MapHTML() string { return d.mapHTML }

// Bounds is the first and last purchase day. It is zero when there are
// no orders.
func (d *Dataset) Bounds() models.DateRange { return d.bounds }

func (d *Dataset) Stats() map[string]any {
	return map[string]any{
		"order_rows":   len(d.orders),
		"customers":    len(d.customers),
		"rfm_rows":     len(d.rfm),
		"top_products": len(d.topProducts),
		"top_regions":  len(d.topRegions),
		"has_map":      d.mapHTML != "",
		"first_day":    d.bounds.Start,
		"last_day":     d.bounds.End,
		"loaded_at":    d.loadedAt,
	}
}

func orderBounds(orders []models.Order) models.DateRange {
	if len(orders) == 0 {
		return models.DateRange{}
	}

	lo, hi := orders[0].PurchasedAt, orders[0].PurchasedAt
	for _, o := range orders[1:] {
		if o.PurchasedAt.Before(lo) {
			lo = o.PurchasedAt
		}
		if o.PurchasedAt.After(hi) {
			hi = o.PurchasedAt
		}
	}

	return models.DateRange{Start: models.Day(lo), End: models.Day(hi)}
}
