package cluster

import (
	"testing"

	"github.com/antonilol/mempool/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeePerVsize(t *testing.T) {
	h := chainhash.HashH([]byte("tx"))

	a := &Ancestor{Txid: &h, Weight: 400, Fee: 1000}
	assert.Equal(t, 10.0, a.FeePerVsize())

	a = &Ancestor{Txid: &h, Weight: 561, Fee: 100}
	assert.InDelta(t, 0.7130, a.FeePerVsize(), 0.0001)
}

func TestUniformFeeRate(t *testing.T) {
	h := chainhash.HashH([]byte("tx"))

	t.Run("all members at the cluster rate", func(t *testing.T) {
		c := &Cluster{
			EffectiveFeePerVsize: 10.0,
			Txs: []*Ancestor{
				{Txid: &h, Weight: 400, Fee: 1000},
				{Txid: &h, Weight: 400, Fee: 1000},
				{Txid: &h, Weight: 400, Fee: 1000},
			},
		}
		assert.True(t, c.UniformFeeRate())
	})

	t.Run("one member below the cluster rate", func(t *testing.T) {
		c := &Cluster{
			EffectiveFeePerVsize: 10.0,
			Txs: []*Ancestor{
				{Txid: &h, Weight: 400, Fee: 1000},
				{Txid: &h, Weight: 400, Fee: 500},
				{Txid: &h, Weight: 400, Fee: 1000},
			},
		}
		assert.False(t, c.UniformFeeRate())
	})

	t.Run("sub-cent differences round together", func(t *testing.T) {
		// 10.004 rounds to 10.00, same as the cluster rate
		c := &Cluster{
			EffectiveFeePerVsize: 10.0,
			Txs:                  []*Ancestor{{Txid: &h, Weight: 4, Fee: 10.004}},
		}
		assert.True(t, c.UniformFeeRate())
	})

	t.Run("differences at the cent boundary split", func(t *testing.T) {
		// 10.006 rounds to 10.01, away from the cluster rate
		c := &Cluster{
			EffectiveFeePerVsize: 10.0,
			Txs:                  []*Ancestor{{Txid: &h, Weight: 4, Fee: 10.006}},
		}
		assert.False(t, c.UniformFeeRate())
	})
}

func TestValidateAncestors(t *testing.T) {
	h := chainhash.HashH([]byte("tx"))

	require.NoError(t, ValidateAncestors([]*Ancestor{
		{Txid: &h, Weight: 400, Fee: 1000},
		{Txid: &h, Weight: 800, Fee: 0},
	}))

	err := ValidateAncestors([]*Ancestor{{Txid: nil, Weight: 400, Fee: 1000}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	err = ValidateAncestors([]*Ancestor{nil})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	err = ValidateAncestors([]*Ancestor{{Txid: &h, Weight: 0, Fee: 1000}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	err = ValidateAncestors([]*Ancestor{{Txid: &h, Weight: 400, Fee: -1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}
