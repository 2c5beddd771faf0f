package sql

import (
	"context"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/tracing"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// SaveCluster persists one cluster and points the tx index at it. The
// returned bool reports whether a row was written.
//
// Clusters with fewer than 2 members are skipped, a single transaction
// cannot bump itself. Clusters where every member already pays the cluster
// rate are skipped as well, they carry no information a fee estimator could
// use. Both skips return (false, nil) without touching the database.
//
// An existing row for the same root is overwritten, the caller is feeding us
// fresher mempool state than whatever we stored before.
func (s *Store) SaveCluster(ctx context.Context, root *chainhash.Hash, height uint32, txs []*cluster.Ancestor, effectiveFeePerVsize float64) (bool, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:SaveCluster")
	defer deferFn()

	if root == nil {
		return false, errors.NewInvalidArgumentError("cluster root is required")
	}

	if len(txs) < 2 {
		return false, nil
	}

	if err := cluster.ValidateAncestors(txs); err != nil {
		return false, err
	}

	c := &cluster.Cluster{
		Root:                 root,
		Height:               height,
		Txs:                  txs,
		EffectiveFeePerVsize: effectiveFeePerVsize,
	}

	if c.UniformFeeRate() {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	q := `
		INSERT INTO cpfp_clusters (root, height, txs, fee_rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (root) DO UPDATE SET height = excluded.height, txs = excluded.txs, fee_rate = excluded.fee_rate`

	if _, err := s.db.ExecContext(ctx, q, root[:], height, cluster.PackAncestors(txs), effectiveFeePerVsize); err != nil {
		return false, s.storageError("SaveCluster", errors.NewStorageError("failed to save cluster %s", root.String(), err))
	}

	s.invalidateCache()

	// the row is in, report it as written even if the index notification
	// fails underneath us
	if err := s.notifyIndex(ctx, []*cluster.Cluster{c}, s.indexBatchSize); err != nil {
		return true, errors.NewStorageError("failed to notify tx index for cluster %s", root.String(), err)
	}

	prometheusClusterSave.Inc()

	return true, nil
}
