package etl

import (
	"sort"
	"strings"

	"github.com/yungbote/shopgraph-backend/internal/domain"
)

// DeriveCategories computes the distinct category set from product rows:
// nil categories dropped, values trimmed, empty-after-trim dropped,
// deduped case-sensitively. Output is sorted so batch membership is
// stable across runs.
func DeriveCategories(products []domain.ProductRow) []domain.CategoryRow {
	seen := make(map[string]struct{})
	for _, p := range products {
		if p.Category == nil {
			continue
		}
		name := strings.TrimSpace(*p.Category)
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.CategoryRow, 0, len(names))
	for _, name := range names {
		out = append(out, domain.CategoryRow{Name: name})
	}
	return out
}
