package cluster

import (
	"math"

	"github.com/antonilol/mempool/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Ancestor is one transaction's contribution to a CPFP cluster.
type Ancestor struct {
	Txid   *chainhash.Hash
	Weight uint32 // weight units, not bytes
	Fee    float64
}

// FeePerVsize returns the ancestor's own fee rate in satoshis per vbyte
// (virtual size = weight / 4).
func (a *Ancestor) FeePerVsize() float64 {
	return a.Fee / (float64(a.Weight) / 4)
}

// Cluster is a persisted group of transactions that together determine a
// combined fee-bump rate.
type Cluster struct {
	Root                 *chainhash.Hash
	Height               uint32
	Txs                  []*Ancestor // ordered, order preserved through the codec
	EffectiveFeePerVsize float64
}

// CpfpInfo is the fee-query view of a cluster from one member's perspective.
type CpfpInfo struct {
	Ancestors            []*Ancestor
	EffectiveFeePerVsize float64
}

// roundedRate scales a rate to a whole number of hundredths. Comparing these
// integers avoids float drift when two rates rounded to 2 decimals are equal.
func roundedRate(rate float64) int64 {
	return int64(math.Round(rate * 100))
}

// UniformFeeRate reports whether every member's own fee rate equals the
// cluster's effective rate, both rounded to 2 decimals. Such a cluster
// carries no information beyond per-transaction data and is not persisted.
func (c *Cluster) UniformFeeRate() bool {
	clusterRate := roundedRate(c.EffectiveFeePerVsize)

	for _, tx := range c.Txs {
		if roundedRate(tx.FeePerVsize()) != clusterRate {
			return false
		}
	}

	return true
}

// ValidateAncestors rejects structurally invalid records before they reach
// storage.
func ValidateAncestors(txs []*Ancestor) error {
	for i, tx := range txs {
		if tx == nil || tx.Txid == nil {
			return errors.NewInvalidArgumentError("ancestor %d is missing its txid", i)
		}

		if tx.Weight == 0 {
			return errors.NewInvalidArgumentError("ancestor %s has zero weight", tx.Txid.String())
		}

		if tx.Fee < 0 {
			return errors.NewInvalidArgumentError("ancestor %s has a negative fee", tx.Txid.String())
		}
	}

	return nil
}
