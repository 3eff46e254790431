package graph

import (
	"errors"
	"testing"

	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
)

func TestValidateLimitBounds(t *testing.T) {
	for _, limit := range []int{0, -1, 51, 1000} {
		err := ValidateLimit(limit)
		if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
			t.Fatalf("limit %d should be rejected as client input, got %v", limit, err)
		}
	}
	for _, limit := range []int{1, 5, 50} {
		if err := ValidateLimit(limit); err != nil {
			t.Fatalf("limit %d should be accepted, got %v", limit, err)
		}
	}
}

func TestDefaultLimitIsValid(t *testing.T) {
	if err := ValidateLimit(DefaultLimit); err != nil {
		t.Fatalf("default limit must validate: %v", err)
	}
}

func TestCacheKeysDistinguishQueryAndParams(t *testing.T) {
	keys := map[string]bool{}
	for _, k := range []string{
		CustomerCacheKey(1, 5),
		CustomerCacheKey(1, 10),
		CustomerCacheKey(2, 5),
		ProductCacheKey(1, 5),
	} {
		if keys[k] {
			t.Fatalf("duplicate cache key %q", k)
		}
		keys[k] = true
	}
}
