package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-dashboard/internal/models"
)

// Load reads every table named in paths, one file after another, and
// joins orders with their items. Any missing file, missing column or
// malformed value aborts the whole load.
func Load(ctx context.Context, paths Paths, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	orders, err := loadOrders(ctx, paths.Orders)
	if err != nil {
		return nil, err
	}
	items, err := loadOrderItems(ctx, paths.OrderItems)
	if err != nil {
		return nil, err
	}
	customers, err := loadCustomers(ctx, paths.Customers)
	if err != nil {
		return nil, err
	}
	rfm, err := loadRFM(ctx, paths.RFM)
	if err != nil {
		return nil, err
	}
	topProducts, err := loadTopProducts(ctx, paths.TopProducts)
	if err != nil {
		return nil, err
	}
	topRegions, err := loadTopRegions(ctx, paths.TopRegions)
	if err != nil {
		return nil, err
	}
	mapHTML, err := loadMap(paths.MapFile)
	if err != nil {
		return nil, err
	}

	joined := joinOrderItems(orders, items)

	logger.Info("dataset loaded",
		"orders", len(orders),
		"order_items", len(items),
		"joined_rows", len(joined),
		"customers", len(customers),
		"rfm_rows", len(rfm),
		"duration", time.Since(start),
	)

	return New(joined, customers, rfm, topProducts, topRegions, mapHTML), nil
}

type orderItem struct {
	OrderID     string
	OrderItemID string
	ProductID   string
	Price       decimal.Decimal
}

// joinOrderItems is an inner join on order id. Each matching item yields
// one row; rows follow the orders file order, then the items file order.
func joinOrderItems(orders []models.Order, items []orderItem) []models.Order {
	byOrder := make(map[string][]int, len(orders))
	for i, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], i)
	}

	joined := make([]models.Order, 0, len(items))
	for _, o := range orders {
		for _, idx := range byOrder[o.OrderID] {
			it := items[idx]
			row := o
			row.OrderItemID = it.OrderItemID
			row.ProductID = it.ProductID
			row.Price = it.Price
			joined = append(joined, row)
		}
	}

	return joined
}

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func loadOrders(ctx context.Context, path string) ([]models.Order, error) {
	t, err := readTable(path, "order_id", "customer_id", "order_purchase_timestamp")
	if err != nil {
		return nil, err
	}

	out := make([]models.Order, 0, len(t.rows))
	for i := range t.rows {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}

		id, err := t.required(i, "order_id")
		if err != nil {
			return nil, err
		}
		ts, err := t.timestamp(i, "order_purchase_timestamp")
		if err != nil {
			return nil, err
		}

		out = append(out, models.Order{
			OrderID:     id,
			CustomerID:  t.cell(i, "customer_id"),
			PurchasedAt: ts,
		})
	}

	return out, nil
}

func loadOrderItems(ctx context.Context, path string) ([]orderItem, error) {
	t, err := readTable(path, "order_id", "price")
	if err != nil {
		return nil, err
	}

	out := make([]orderItem, 0, len(t.rows))
	for i := range t.rows {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}

		id, err := t.required(i, "order_id")
		if err != nil {
			return nil, err
		}
		price, err := t.decimal(i, "price")
		if err != nil {
			return nil, err
		}

		out = append(out, orderItem{
			OrderID:     id,
			OrderItemID: t.cell(i, "order_item_id"),
			ProductID:   t.cell(i, "product_id"),
			Price:       price,
		})
	}

	return out, nil
}

func loadCustomers(ctx context.Context, path string) ([]models.Customer, error) {
	t, err := readTable(path, "customer_id", "customer_city", "customer_state")
	if err != nil {
		return nil, err
	}

	out := make([]models.Customer, 0, len(t.rows))
	for i := range t.rows {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}

		id, err := t.required(i, "customer_id")
		if err != nil {
			return nil, err
		}

		out = append(out, models.Customer{
			CustomerID:       id,
			CustomerUniqueID: t.cell(i, "customer_unique_id"),
			City:             t.cell(i, "customer_city"),
			State:            t.cell(i, "customer_state"),
		})
	}

	return out, nil
}

func loadRFM(ctx context.Context, path string) ([]models.RFM, error) {
	t, err := readTable(path, "customer_unique_id", "recency", "frequency", "monetary")
	if err != nil {
		return nil, err
	}

	out := make([]models.RFM, 0, len(t.rows))
	for i := range t.rows {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}

		recency, err := t.int(i, "recency")
		if err != nil {
			return nil, err
		}
		frequency, err := t.int(i, "frequency")
		if err != nil {
			return nil, err
		}
		monetary, err := t.decimal(i, "monetary")
		if err != nil {
			return nil, err
		}

		out = append(out, models.RFM{
			CustomerUniqueID: t.cell(i, "customer_unique_id"),
			Recency:          recency,
			Frequency:        frequency,
			Monetary:         monetary,
		})
	}

	return out, nil
}

func loadTopProducts(ctx context.Context, path string) ([]models.TopProduct, error) {
	t, err := readTable(path, "product_category_name", "review_count")
	if err != nil {
		return nil, err
	}

	out := make([]models.TopProduct, 0, len(t.rows))
	for i := range t.rows {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}

		count, err := t.int(i, "review_count")
		if err != nil {
			return nil, err
		}

		out = append(out, models.TopProduct{
			Category:    t.cell(i, "product_category_name"),
			ReviewCount: count,
		})
	}

	return out, nil
}

func loadTopRegions(ctx context.Context, path string) ([]models.TopRegion, error) {
	t, err := readTable(path, "customer_city", "total_sales")
	if err != nil {
		return nil, err
	}

	out := make([]models.TopRegion, 0, len(t.rows))
	for i := range t.rows {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}

		sales, err := t.decimal(i, "total_sales")
		if err != nil {
			return nil, err
		}

		out = append(out, models.TopRegion{
			City:       t.cell(i, "customer_city"),
			TotalSales: sales,
		})
	}

	return out, nil
}

func loadMap(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read map fragment: %w", err)
	}
	return string(data), nil
}
