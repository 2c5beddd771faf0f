package util

import (
	"golang.org/x/exp/constraints"
)

// SplitIntoBatches splits items into consecutive batches of at most size
// elements. The batches share the backing array of items. A size of zero or
// less yields a single batch with all items.
func SplitIntoBatches[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}

	if size <= 0 {
		return [][]T{items}
	}

	numBatches := (len(items) + size - 1) / size
	batches := make([][]T, 0, numBatches)

	for start := 0; start < len(items); start += size {
		batches = append(batches, items[start:min(start+size, len(items))])
	}

	return batches
}

func min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}

	return b
}

// InBatches calls fn for each batch of at most size elements, stopping at the
// first error.
func InBatches[T any](items []T, size int, fn func(batch []T) error) error {
	for _, batch := range SplitIntoBatches(items, size) {
		if err := fn(batch); err != nil {
			return err
		}
	}

	return nil
}
