package etl

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/shopgraph-backend/internal/domain"
	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
)

// BatchSizes bound per-statement payload size; they are a throughput
// knob, not a correctness requirement.
type BatchSizes struct {
	Category  int
	Product   int
	Customer  int
	Order     int
	OrderItem int
}

func DefaultBatchSizes() BatchSizes {
	return BatchSizes{
		Category:  100,
		Product:   100,
		Customer:  200,
		Order:     200,
		OrderItem: 500,
	}
}

// PassSummary reports what one load pass did. Skipped counts rows that
// found no match (an order item whose order or product does not exist,
// an order whose customer is missing a PLACED edge).
type PassSummary struct {
	Pass      string
	Attempted int
	Written   int64
	Skipped   int64
}

type Loader struct {
	exec  CypherExecutor
	sizes BatchSizes
	log   *logger.Logger
}

func NewLoader(exec CypherExecutor, sizes BatchSizes, log *logger.Logger) *Loader {
	return &Loader{exec: exec, sizes: sizes, log: log.With("component", "Loader")}
}

// Load runs the five upsert passes in dependency order: Category,
// Product (+IN_CATEGORY), Customer, Order (+PLACED), CONTAINS. Each
// batch commits on its own; a failure aborts the remaining work but
// leaves committed batches applied.
func (l *Loader) Load(
	ctx context.Context,
	categories []domain.CategoryRow,
	products []domain.ProductRow,
	customers []domain.CustomerRow,
	orders []domain.OrderRow,
	items []domain.OrderItemRow,
) ([]PassSummary, error) {
	summaries := make([]PassSummary, 0, 5)

	passes := []struct {
		name   string
		cypher string
		rows   []map[string]any
		size   int
	}{
		{"categories", categoryCypher, categoryRows(categories), l.sizes.Category},
		{"products", productCypher, productRows(products), l.sizes.Product},
		{"customers", customerCypher, customerRows(customers), l.sizes.Customer},
		{"orders", orderCypher, orderRows(orders), l.sizes.Order},
		{"order_items", orderItemCypher, orderItemRows(items), l.sizes.OrderItem},
	}

	for _, pass := range passes {
		summary, err := l.runPass(ctx, pass.name, pass.cypher, pass.rows, pass.size)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (l *Loader) runPass(ctx context.Context, name, cypher string, rows []map[string]any, size int) (PassSummary, error) {
	summary := PassSummary{Pass: name, Attempted: len(rows)}
	for i, batch := range Chunk(rows, size) {
		written, err := l.exec.Execute(ctx, cypher, map[string]any{"rows": batch})
		if err != nil {
			return summary, fmt.Errorf("%w: pass %s batch %d: %v", pkgerrors.ErrLoad, name, i, err)
		}
		summary.Written += written
	}
	summary.Skipped = int64(summary.Attempted) - summary.Written
	if summary.Skipped < 0 {
		summary.Skipped = 0
	}
	l.log.Info("Load pass complete",
		"pass", name,
		"attempted", summary.Attempted,
		"written", summary.Written,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

const categoryCypher = `
UNWIND $rows AS row
MERGE (:Category {name: row.name})
RETURN count(*) AS n`

// Product identity is the id; name and category are plain property
// writes so retries are last-write-wins. The category edge only exists
// for a non-empty category, and targets the trimmed Category node.
const productCypher = `
UNWIND $rows AS row
MERGE (p:Product {id: row.id})
SET p.name = row.name, p.category = row.category
WITH p, row
CALL {
  WITH p, row
  WITH p, row WHERE row.category IS NOT NULL AND row.category <> ''
  MERGE (c:Category {name: row.category})
  MERGE (p)-[:IN_CATEGORY]->(c)
}
RETURN count(*) AS n`

// Merge on id alone; the uniqueness constraint owns identity and a name
// change updates in place instead of widening the match key.
const customerCypher = `
UNWIND $rows AS row
MERGE (c:Customer {id: row.id})
SET c.name = row.name
RETURN count(*) AS n`

// The Order node is merged before the customer lookup, so an order row
// with an unknown customer_id still yields an orphan node and no edge.
const orderCypher = `
UNWIND $rows AS row
MERGE (o:Order {id: row.id})
WITH o, row
OPTIONAL MATCH (c:Customer {id: row.customer_id})
FOREACH (_ IN CASE WHEN c IS NULL THEN [] ELSE [1] END |
  MERGE (c)-[:PLACED]->(o))
RETURN count(c) AS n`

// qty accumulates across runs: replaying the pipeline adds to the edge
// instead of overwriting it. A null qty counts as 1 per occurrence.
const orderItemCypher = `
UNWIND $rows AS row
MATCH (o:Order {id: row.order_id})
MATCH (p:Product {id: row.product_id})
MERGE (o)-[r:CONTAINS]->(p)
SET r.qty = coalesce(r.qty, 0) + coalesce(row.qty, 1)
RETURN count(*) AS n`

func categoryRows(categories []domain.CategoryRow) []map[string]any {
	out := make([]map[string]any, 0, len(categories))
	for _, c := range categories {
		out = append(out, map[string]any{"name": c.Name})
	}
	return out
}

func productRows(products []domain.ProductRow) []map[string]any {
	out := make([]map[string]any, 0, len(products))
	for _, p := range products {
		var category any
		if p.Category != nil {
			if trimmed := strings.TrimSpace(*p.Category); trimmed != "" {
				category = trimmed
			}
		}
		out = append(out, map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"category": category,
		})
	}
	return out
}

func customerRows(customers []domain.CustomerRow) []map[string]any {
	out := make([]map[string]any, 0, len(customers))
	for _, c := range customers {
		out = append(out, map[string]any{"id": c.ID, "name": c.Name})
	}
	return out
}

func orderRows(orders []domain.OrderRow) []map[string]any {
	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, map[string]any{"id": o.ID, "customer_id": o.CustomerID})
	}
	return out
}

func orderItemRows(items []domain.OrderItemRow) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		var qty any
		if it.Qty != nil {
			qty = *it.Qty
		}
		out = append(out, map[string]any{
			"order_id":   it.OrderID,
			"product_id": it.ProductID,
			"qty":        qty,
		})
	}
	return out
}
