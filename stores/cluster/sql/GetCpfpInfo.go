package sql

import (
	"context"

	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/tracing"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// GetCpfpInfo resolves txid to its cluster through the tx index and returns
// the other members plus the effective fee rate the whole package pays.
func (s *Store) GetCpfpInfo(ctx context.Context, txid *chainhash.Hash) (*cluster.CpfpInfo, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:GetCpfpInfo")
	defer deferFn()

	root, err := s.txIndex.GetCluster(ctx, txid)
	if err != nil {
		return nil, err
	}

	c, err := s.GetCluster(ctx, root)
	if err != nil {
		return nil, err
	}

	ancestors := make([]*cluster.Ancestor, 0, len(c.Txs))

	for _, tx := range c.Txs {
		if tx.Txid.IsEqual(txid) {
			continue
		}

		ancestors = append(ancestors, tx)
	}

	prometheusClusterGetCpfp.Inc()

	return &cluster.CpfpInfo{
		Ancestors:            ancestors,
		EffectiveFeePerVsize: c.EffectiveFeePerVsize,
	}, nil
}
