package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: pass order_items batch 3: boom", ErrLoad)
	if !stderrors.Is(wrapped, ErrLoad) {
		t.Fatalf("wrapped load error should match ErrLoad: %v", wrapped)
	}
	doubly := fmt.Errorf("pipeline: %w", wrapped)
	if !stderrors.Is(doubly, ErrLoad) {
		t.Fatalf("double wrapping should still match: %v", doubly)
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	wrapped := fmt.Errorf("%w: customers: connection reset", ErrExtraction)
	for _, other := range []error{ErrLoad, ErrSchemaBootstrap, ErrDependencyUnavailable, ErrInvalidArgument, ErrBackend} {
		if stderrors.Is(wrapped, other) {
			t.Fatalf("extraction error must not match %v", other)
		}
	}
}
