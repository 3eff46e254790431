package etl

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yungbote/shopgraph-backend/internal/domain"
	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
)

// Extraction is full-table reads only: no filtering, joins, or
// pagination. Result sets are decoded into typed rows at this boundary.
type Extraction struct {
	Customers  []domain.CustomerRow
	Products   []domain.ProductRow
	Orders     []domain.OrderRow
	OrderItems []domain.OrderItemRow
}

type Extractor struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewExtractor(pool *pgxpool.Pool, log *logger.Logger) *Extractor {
	return &Extractor{pool: pool, log: log.With("component", "Extractor")}
}

func (e *Extractor) ExtractAll(ctx context.Context) (*Extraction, error) {
	out := &Extraction{}

	customers, err := queryRows(ctx, e.pool, `SELECT id, name FROM customers`,
		func(rows pgx.Rows) (domain.CustomerRow, error) {
			var r domain.CustomerRow
			err := rows.Scan(&r.ID, &r.Name)
			return r, err
		})
	if err != nil {
		return nil, fmt.Errorf("%w: customers: %v", pkgerrors.ErrExtraction, err)
	}
	out.Customers = customers

	products, err := queryRows(ctx, e.pool, `SELECT id, name, category FROM products`,
		func(rows pgx.Rows) (domain.ProductRow, error) {
			var r domain.ProductRow
			err := rows.Scan(&r.ID, &r.Name, &r.Category)
			return r, err
		})
	if err != nil {
		return nil, fmt.Errorf("%w: products: %v", pkgerrors.ErrExtraction, err)
	}
	out.Products = products

	orders, err := queryRows(ctx, e.pool, `SELECT id, customer_id FROM orders`,
		func(rows pgx.Rows) (domain.OrderRow, error) {
			var r domain.OrderRow
			err := rows.Scan(&r.ID, &r.CustomerID)
			return r, err
		})
	if err != nil {
		return nil, fmt.Errorf("%w: orders: %v", pkgerrors.ErrExtraction, err)
	}
	out.Orders = orders

	items, err := queryRows(ctx, e.pool, `SELECT order_id, product_id, qty FROM order_items`,
		func(rows pgx.Rows) (domain.OrderItemRow, error) {
			var r domain.OrderItemRow
			err := rows.Scan(&r.OrderID, &r.ProductID, &r.Qty)
			return r, err
		})
	if err != nil {
		return nil, fmt.Errorf("%w: order_items: %v", pkgerrors.ErrExtraction, err)
	}
	out.OrderItems = items

	e.log.Info("Extraction complete",
		"customers", len(out.Customers),
		"products", len(out.Products),
		"orders", len(out.Orders),
		"order_items", len(out.OrderItems),
	)
	return out, nil
}

func queryRows[T any](ctx context.Context, pool *pgxpool.Pool, sql string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
