package cluster

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Store persists CPFP clusters keyed by their root hash and keeps the
// companion tx index consistent with every write and removal. Implementations
// hold no in-process locks, never retry internally and propagate every
// storage failure to the caller, which owns retry policy.
type Store interface {
	Health(ctx context.Context) (int, string, error)

	// SaveCluster writes one cluster with overwrite semantics on the root key
	// and returns whether a row was written. Clusters with fewer than 2
	// members, or whose members all share the cluster's rounded fee rate, are
	// rejected without touching storage. After a write, every member's index
	// entry is submitted in bounded chunks.
	SaveCluster(ctx context.Context, root *chainhash.Hash, height uint32, txs []*Ancestor, effectiveFeePerVsize float64) (bool, error)

	// BatchSaveClusters bulk-inserts candidates with ignore-on-conflict
	// semantics, for backfill over not-yet-written history. Candidates are
	// filtered by the same rules as SaveCluster; index notifications for all
	// survivors are submitted before the row inserts. Returns whether at
	// least one candidate survived the filter.
	BatchSaveClusters(ctx context.Context, clusters []*Cluster) (bool, error)

	// GetCluster looks up a cluster by exact root key. A cluster with zero
	// members is a valid result, produced by progress markers.
	GetCluster(ctx context.Context, root *chainhash.Hash) (*Cluster, error)

	// GetCpfpInfo resolves the cluster a transaction currently belongs to via
	// the tx index and returns the other members and the effective rate.
	GetCpfpInfo(ctx context.Context, txid *chainhash.Hash) (*CpfpInfo, error)

	// DeleteClustersFrom removes every cluster with height >= height after
	// un-linking each member from the tx index, leaving no index entry
	// pointing at a deleted cluster. A height with no rows is a no-op.
	DeleteClustersFrom(ctx context.Context, height uint32) error

	// InsertProgressMarker records that a height was processed with zero
	// qualifying clusters, inserting a synthetic empty cluster row keyed by
	// ProgressMarkerRoot. A height that already has any row is left as is.
	InsertProgressMarker(ctx context.Context, height uint32) error

	Close(ctx context.Context) error
}
