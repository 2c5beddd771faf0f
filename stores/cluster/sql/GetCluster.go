package sql

import (
	"context"
	"database/sql"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/tracing"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// GetCluster returns the cluster stored under root. A cluster with no
// members is a valid result, progress markers are stored that way.
func (s *Store) GetCluster(ctx context.Context, root *chainhash.Hash) (*cluster.Cluster, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:GetCluster")
	defer deferFn()

	if root == nil {
		return nil, errors.NewInvalidArgumentError("cluster root is required")
	}

	var op *CacheOperation

	if s.responseCache != nil {
		op = s.responseCache.Begin(*root)
		if c := op.Get(); c != nil {
			return c, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	q := `
		SELECT height, txs, fee_rate
		FROM cpfp_clusters
		WHERE root = $1`

	var (
		height  uint32
		payload []byte
		feeRate float64
	)

	if err := s.db.QueryRowContext(ctx, q, root[:]).Scan(&height, &payload, &feeRate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewClusterNotFoundError("cluster %s not found", root.String())
		}

		return nil, s.storageError("GetCluster", errors.NewStorageError("failed to get cluster %s", root.String(), err))
	}

	txs, err := cluster.UnpackAncestors(payload)
	if err != nil {
		return nil, err
	}

	rootCopy := *root

	c := &cluster.Cluster{
		Root:                 &rootCopy,
		Height:               height,
		Txs:                  txs,
		EffectiveFeePerVsize: feeRate,
	}

	if op != nil {
		op.Set(c, s.cacheTTL)
	}

	prometheusClusterGet.Inc()

	return c, nil
}
