package sql

import (
	"context"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/tracing"
	"github.com/antonilol/mempool/util"
)

// BatchSaveClusters persists a batch of clusters, filtering each candidate
// with the same rules as SaveCluster. The returned bool reports whether at
// least one candidate survived the filters.
//
// The batch path backfills history that was computed elsewhere, so two
// things differ from the single save: the tx index is notified before the
// rows are written, and an existing row wins over the incoming one, the
// inserts ignore conflicts instead of overwriting.
//
// When no candidate survives, the database is not touched at all.
func (s *Store) BatchSaveClusters(ctx context.Context, clusters []*cluster.Cluster) (bool, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:BatchSaveClusters")
	defer deferFn()

	accepted := make([]*cluster.Cluster, 0, len(clusters))

	for _, c := range clusters {
		if c == nil || c.Root == nil || len(c.Txs) < 2 {
			continue
		}

		if err := cluster.ValidateAncestors(c.Txs); err != nil {
			return false, err
		}

		if c.UniformFeeRate() {
			continue
		}

		accepted = append(accepted, c)
	}

	if len(accepted) == 0 {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	if err := s.notifyIndex(ctx, accepted, s.batchInsertSize); err != nil {
		return false, errors.NewStorageError("failed to notify tx index for batch", err)
	}

	q := `
		INSERT INTO cpfp_clusters (root, height, txs, fee_rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (root) DO NOTHING`

	err := util.InBatches(accepted, s.batchInsertSize, func(batch []*cluster.Cluster) error {
		txn, err := s.db.Begin()
		if err != nil {
			return errors.NewStorageError("failed to begin transaction", err)
		}

		defer func() {
			_ = txn.Rollback()
		}()

		for _, c := range batch {
			if _, err = txn.ExecContext(ctx, q, c.Root[:], c.Height, cluster.PackAncestors(c.Txs), c.EffectiveFeePerVsize); err != nil {
				return errors.NewStorageError("failed to insert cluster %s", c.Root.String(), err)
			}
		}

		if err = txn.Commit(); err != nil {
			return errors.NewStorageError("failed to commit transaction", err)
		}

		return nil
	})
	if err != nil {
		return false, s.storageError("BatchSaveClusters", err)
	}

	s.invalidateCache()

	prometheusClusterBatchSave.Inc()

	return true, nil
}
