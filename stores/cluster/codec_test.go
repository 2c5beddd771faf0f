package cluster

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/antonilol/mempool/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackAncestorsByteLayout(t *testing.T) {
	displayHex := "00000000000000000009d54a110cc122960d31567d3ee84a41dd2ed3f9ba1aee"

	txid, err := chainhash.NewHashFromStr(displayHex)
	require.NoError(t, err)

	payload := PackAncestors([]*Ancestor{{Txid: txid, Weight: 560, Fee: 1234}})
	require.Len(t, payload, AncestorSize)

	// bytes 0-31 hold the hash in canonical order, the reverse of display order
	displayBytes, err := hex.DecodeString(displayHex)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		assert.Equal(t, displayBytes[31-i], payload[i])
	}

	assert.Equal(t, uint32(560), binary.BigEndian.Uint32(payload[32:36]))
	assert.Equal(t, uint64(1234), binary.BigEndian.Uint64(payload[36:44]))
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 25} {
		txs := make([]*Ancestor, 0, n)

		for i := 0; i < n; i++ {
			h := chainhash.HashH([]byte{byte(i)})
			txs = append(txs, &Ancestor{
				Txid:   &h,
				Weight: uint32(400 + i),
				Fee:    float64(1000 * (i + 1)),
			})
		}

		payload := PackAncestors(txs)
		assert.Len(t, payload, n*AncestorSize)

		decoded, err := UnpackAncestors(payload)
		require.NoError(t, err)
		require.Len(t, decoded, n)

		for i := range txs {
			assert.Equal(t, txs[i], decoded[i])
		}
	}
}

func TestUnpackAncestorsEmpty(t *testing.T) {
	decoded, err := UnpackAncestors(nil)
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)

	decoded, err = UnpackAncestors([]byte{})
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestUnpackAncestorsMalformedLength(t *testing.T) {
	for _, n := range []int{1, 43, 45, 89} {
		_, err := UnpackAncestors(make([]byte, n))
		require.Error(t, err, "length %d must be rejected", n)
		assert.True(t, errors.Is(err, errors.ErrMalformedPayload))
	}
}

func TestPackAncestorsRoundsFractionalFees(t *testing.T) {
	h := chainhash.HashH([]byte("fractional"))

	payload := PackAncestors([]*Ancestor{
		{Txid: &h, Weight: 400, Fee: 1000.6},
		{Txid: &h, Weight: 400, Fee: 1000.4},
		{Txid: &h, Weight: 400, Fee: 2.5},
	})

	decoded, err := UnpackAncestors(payload)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	assert.Equal(t, float64(1001), decoded[0].Fee)
	assert.Equal(t, float64(1000), decoded[1].Fee)
	assert.Equal(t, float64(3), decoded[2].Fee)
}

func TestUnpackAncestorsPreservesOrder(t *testing.T) {
	h1 := chainhash.HashH([]byte("first"))
	h2 := chainhash.HashH([]byte("second"))
	h3 := chainhash.HashH([]byte("third"))

	payload := PackAncestors([]*Ancestor{
		{Txid: &h1, Weight: 1, Fee: 1},
		{Txid: &h2, Weight: 2, Fee: 2},
		{Txid: &h3, Weight: 3, Fee: 3},
	})

	decoded, err := UnpackAncestors(payload)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	assert.Equal(t, h1, *decoded[0].Txid)
	assert.Equal(t, h2, *decoded[1].Txid)
	assert.Equal(t, h3, *decoded[2].Txid)
}
