package cluster

import (
	"encoding/binary"
	"math"

	"github.com/antonilol/mempool/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// AncestorSize is the number of bytes one ancestor occupies in a cluster
// payload: 32 bytes txid in canonical byte order, 4 bytes weight and 8 bytes
// fee, both big-endian.
const AncestorSize = 44

// PackAncestors serializes the ancestors into a payload of exactly
// 44 * len(txs) bytes, preserving order. Fractional fees are rounded to the
// nearest satoshi; sub-satoshi precision is lost here.
func PackAncestors(txs []*Ancestor) []byte {
	payload := make([]byte, len(txs)*AncestorSize)

	for i, tx := range txs {
		offset := i * AncestorSize

		copy(payload[offset:offset+32], tx.Txid[:])
		binary.BigEndian.PutUint32(payload[offset+32:offset+36], tx.Weight)
		binary.BigEndian.PutUint64(payload[offset+36:offset+44], uint64(math.Round(tx.Fee)))
	}

	return payload
}

// UnpackAncestors deserializes a cluster payload. A nil or empty payload is
// a valid empty cluster, used by progress markers. A length that is not a
// multiple of AncestorSize means the row is corrupt and is rejected rather
// than truncated.
func UnpackAncestors(payload []byte) ([]*Ancestor, error) {
	if len(payload) == 0 {
		return []*Ancestor{}, nil
	}

	if len(payload)%AncestorSize != 0 {
		return nil, errors.NewMalformedPayloadError("payload length %d is not a multiple of %d", len(payload), AncestorSize)
	}

	txs := make([]*Ancestor, 0, len(payload)/AncestorSize)

	for offset := 0; offset < len(payload); offset += AncestorSize {
		txid, err := chainhash.NewHash(payload[offset : offset+32])
		if err != nil {
			return nil, errors.NewProcessingError("failed to convert txid", err)
		}

		txs = append(txs, &Ancestor{
			Txid:   txid,
			Weight: binary.BigEndian.Uint32(payload[offset+32 : offset+36]),
			Fee:    float64(binary.BigEndian.Uint64(payload[offset+36 : offset+44])),
		})
	}

	return txs, nil
}
