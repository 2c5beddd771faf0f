package cluster

import (
	"encoding/binary"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// ProgressMarkerRoot derives the synthetic cluster key that records "this
// height was fully processed with zero qualifying clusters": the height as a
// little-endian uint32 in the first 4 bytes, the remaining 28 bytes zero.
// Real cluster hashes essentially never end in 28 zero bytes, so marker keys
// cannot collide with them.
func ProgressMarkerRoot(height uint32) *chainhash.Hash {
	var root chainhash.Hash

	binary.LittleEndian.PutUint32(root[0:4], height)

	return &root
}

// IsProgressMarkerRoot reports whether root has the shape produced by
// ProgressMarkerRoot.
func IsProgressMarkerRoot(root *chainhash.Hash) bool {
	for _, b := range root[4:] {
		if b != 0 {
			return false
		}
	}

	return true
}

// ProgressMarkerHeight recovers the height a marker root was derived from.
// Only meaningful when IsProgressMarkerRoot(root) holds.
func ProgressMarkerHeight(root *chainhash.Hash) uint32 {
	return binary.LittleEndian.Uint32(root[0:4])
}
