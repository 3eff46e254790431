package domain

// Rows are decoded once at the extraction boundary; everything downstream
// works with these shapes instead of raw field maps.

type CustomerRow struct {
	ID   int64
	Name string
}

type ProductRow struct {
	ID       int64
	Name     string
	Category *string
}

type OrderRow struct {
	ID         int64
	CustomerID int64
}

type OrderItemRow struct {
	OrderID   int64
	ProductID int64
	Qty       *int64
}

type CategoryRow struct {
	Name string
}

// Recommendation is one scored product from either traversal query.
type Recommendation struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Score       int64  `json:"score"`
}
