package envutil

import (
	"testing"
	"time"
)

func TestStringDefaultAndOverride(t *testing.T) {
	if got := String("SHOPGRAPH_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("SHOPGRAPH_TEST_SET", "  value  ")
	if got := String("SHOPGRAPH_TEST_SET", "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestIntBadValueFallsBack(t *testing.T) {
	t.Setenv("SHOPGRAPH_TEST_INT", "not-a-number")
	if got := Int("SHOPGRAPH_TEST_INT", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
	t.Setenv("SHOPGRAPH_TEST_INT", "12")
	if got := Int("SHOPGRAPH_TEST_INT", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestSeconds(t *testing.T) {
	t.Setenv("SHOPGRAPH_TEST_SEC", "30")
	if got := Seconds("SHOPGRAPH_TEST_SEC", time.Minute); got != 30*time.Second {
		t.Fatalf("expected 30s, got %s", got)
	}
	t.Setenv("SHOPGRAPH_TEST_SEC", "-5")
	if got := Seconds("SHOPGRAPH_TEST_SEC", time.Minute); got != time.Minute {
		t.Fatalf("non-positive should fall back, got %s", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("SHOPGRAPH_TEST_BOOL", "1")
	if !Bool("SHOPGRAPH_TEST_BOOL", false) {
		t.Fatalf("expected true for 1")
	}
	t.Setenv("SHOPGRAPH_TEST_BOOL", "off")
	if Bool("SHOPGRAPH_TEST_BOOL", true) {
		t.Fatalf("expected false for off")
	}
}
