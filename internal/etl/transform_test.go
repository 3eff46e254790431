package etl

import (
	"testing"

	"github.com/yungbote/shopgraph-backend/internal/domain"
)

func strptr(s string) *string { return &s }

func TestDeriveCategoriesTrimsAndDedupes(t *testing.T) {
	products := []domain.ProductRow{
		{ID: 1, Name: "a", Category: strptr("Books")},
		{ID: 2, Name: "b", Category: strptr(" Toys ")},
		{ID: 3, Name: "c", Category: strptr("")},
		{ID: 4, Name: "d", Category: nil},
		{ID: 5, Name: "e", Category: strptr("Books")},
	}

	got := DeriveCategories(products)
	want := []string{"Books", "Toys"}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d (%v)", len(want), len(got), got)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("category %d: got %q want %q", i, got[i].Name, name)
		}
	}
}

func TestDeriveCategoriesCaseSensitive(t *testing.T) {
	products := []domain.ProductRow{
		{ID: 1, Category: strptr("books")},
		{ID: 2, Category: strptr("Books")},
	}
	got := DeriveCategories(products)
	if len(got) != 2 {
		t.Fatalf("expected case-sensitive dedupe to keep 2 categories, got %d", len(got))
	}
}

func TestDeriveCategoriesEmptyInput(t *testing.T) {
	if got := DeriveCategories(nil); len(got) != 0 {
		t.Fatalf("expected no categories, got %v", got)
	}
}
