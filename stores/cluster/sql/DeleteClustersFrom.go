package sql

import (
	"context"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/tracing"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/ordishs/go-utils"
)

// DeleteClustersFrom removes every cluster recorded at height or above and
// unlinks each of their members from the tx index, one call per member.
// Used on reorg, the chain from height onwards is no longer the chain these
// clusters were observed on. Nothing stored below height is touched, and a
// height with no rows is a no-op.
func (s *Store) DeleteClustersFrom(ctx context.Context, height uint32) error {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:DeleteClustersFrom")
	defer deferFn()

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	q := `
		SELECT root, txs
		FROM cpfp_clusters
		WHERE height >= $1`

	rows, err := s.db.QueryContext(ctx, q, height)
	if err != nil {
		return s.storageError("DeleteClustersFrom", errors.NewStorageError("failed to select clusters from height %d", height, err))
	}

	defer rows.Close()

	var members []*chainhash.Hash

	selected := 0

	for rows.Next() {
		var rootBytes, payload []byte

		if err = rows.Scan(&rootBytes, &payload); err != nil {
			return s.storageError("DeleteClustersFrom", errors.NewStorageError("failed to scan cluster row", err))
		}

		selected++

		txs, err := cluster.UnpackAncestors(payload)
		if err != nil {
			return err
		}

		s.logger.Debugf("[ClusterStore] rolling back cluster %s with %d members", utils.ReverseAndHexEncodeSlice(rootBytes), len(txs))

		for _, tx := range txs {
			members = append(members, tx.Txid)
		}
	}

	if err = rows.Err(); err != nil {
		return s.storageError("DeleteClustersFrom", errors.NewStorageError("failed to read cluster rows", err))
	}

	if selected == 0 {
		return nil
	}

	for _, txid := range members {
		if err = s.txIndex.RemoveTransaction(ctx, txid); err != nil {
			return errors.NewStorageError("failed to unlink tx %s", txid.String(), err)
		}
	}

	if _, err = s.db.ExecContext(ctx, `DELETE FROM cpfp_clusters WHERE height >= $1`, height); err != nil {
		return s.storageError("DeleteClustersFrom", errors.NewStorageError("failed to delete clusters from height %d", height, err))
	}

	s.invalidateCache()

	prometheusClusterDeleteFrom.Inc()

	return nil
}
