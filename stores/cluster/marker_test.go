package cluster

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressMarkerRoot(t *testing.T) {
	root := ProgressMarkerRoot(500)
	require.NotNil(t, root)

	// 500 = 0x01F4 little-endian in the first four bytes
	assert.Equal(t, byte(0xf4), root[0])
	assert.Equal(t, byte(0x01), root[1])
	assert.Equal(t, byte(0x00), root[2])
	assert.Equal(t, byte(0x00), root[3])

	for i := 4; i < chainhash.HashSize; i++ {
		assert.Equal(t, byte(0), root[i])
	}

	assert.True(t, IsProgressMarkerRoot(root))
	assert.Equal(t, uint32(500), ProgressMarkerHeight(root))
}

func TestProgressMarkerRootsAreDistinct(t *testing.T) {
	seen := make(map[chainhash.Hash]struct{})

	for _, height := range []uint32{0, 1, 499, 500, 501, 1 << 20, 1<<32 - 1} {
		root := ProgressMarkerRoot(height)

		_, dup := seen[*root]
		assert.False(t, dup, "height %d produced a duplicate root", height)
		seen[*root] = struct{}{}

		assert.Equal(t, height, ProgressMarkerHeight(root))
	}
}

func TestIsProgressMarkerRootRejectsRealHashes(t *testing.T) {
	h := chainhash.HashH([]byte("a real cluster root"))
	assert.False(t, IsProgressMarkerRoot(&h))
}
