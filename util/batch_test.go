package util

import (
	"testing"

	"github.com/antonilol/mempool/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIntoBatches(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, SplitIntoBatches([]int{}, 10))
	})

	t.Run("smaller than batch size", func(t *testing.T) {
		batches := SplitIntoBatches([]int{1, 2, 3}, 10)
		require.Len(t, batches, 1)
		assert.Equal(t, []int{1, 2, 3}, batches[0])
	})

	t.Run("exact multiple", func(t *testing.T) {
		batches := SplitIntoBatches([]int{1, 2, 3, 4}, 2)
		require.Len(t, batches, 2)
		assert.Equal(t, []int{1, 2}, batches[0])
		assert.Equal(t, []int{3, 4}, batches[1])
	})

	t.Run("remainder in last batch", func(t *testing.T) {
		batches := SplitIntoBatches([]int{1, 2, 3, 4, 5}, 2)
		require.Len(t, batches, 3)
		assert.Equal(t, []int{5}, batches[2])
	})

	t.Run("zero size returns single batch", func(t *testing.T) {
		batches := SplitIntoBatches([]string{"a", "b"}, 0)
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"a", "b"}, batches[0])
	})
}

func TestInBatches(t *testing.T) {
	t.Run("visits all batches in order", func(t *testing.T) {
		var seen [][]int

		err := InBatches([]int{1, 2, 3, 4, 5}, 2, func(batch []int) error {
			seen = append(seen, batch)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, seen)
	})

	t.Run("stops on first error", func(t *testing.T) {
		calls := 0
		errBoom := errors.NewProcessingError("boom")

		err := InBatches([]int{1, 2, 3, 4}, 1, func(batch []int) error {
			calls++
			if calls == 2 {
				return errBoom
			}
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 2, calls)
	})

	t.Run("no calls for empty input", func(t *testing.T) {
		err := InBatches(nil, 10, func(batch []int) error {
			t.Fatal("should not be called")
			return nil
		})
		require.NoError(t, err)
	})
}
