package etl

// Chunk splits items into groups of at most size, preserving order. The
// final group may be smaller; no group is ever empty. Groups share the
// input's backing array, so the split costs no copies.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 || size <= 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
