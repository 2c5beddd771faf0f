package sql

import (
	"context"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/tracing"
)

// InsertProgressMarker records that height was processed even though no
// cluster at that height was worth saving. The marker is an empty cluster
// under a synthetic root derived from the height, so restart logic can tell
// "done, nothing found" apart from "never processed".
//
// If any row already exists at height, real cluster or marker, nothing is
// inserted. Two markers racing on the same height resolve on the key, the
// insert ignores conflicts.
func (s *Store) InsertProgressMarker(ctx context.Context, height uint32) error {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:InsertProgressMarker")
	defer deferFn()

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	q := `
		SELECT count(*)
		FROM cpfp_clusters
		WHERE height = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, q, height).Scan(&count); err != nil {
		return s.storageError("InsertProgressMarker", errors.NewStorageError("failed to check for rows at height %d", height, err))
	}

	if count > 0 {
		return nil
	}

	root := cluster.ProgressMarkerRoot(height)

	q = `
		INSERT INTO cpfp_clusters (root, height, txs, fee_rate)
		VALUES ($1, $2, $3, 0)`

	if _, err := s.db.ExecContext(ctx, q, root[:], height, []byte{}); err != nil {
		// another writer beat us to the same marker key, the height is
		// recorded either way
		if isUniqueViolation(err) {
			return nil
		}

		return s.storageError("InsertProgressMarker", errors.NewStorageError("failed to insert progress marker at height %d", height, err))
	}

	s.invalidateCache()

	prometheusClusterProgressMarker.Inc()

	return nil
}
