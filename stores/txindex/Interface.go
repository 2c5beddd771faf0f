package txindex

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Entry associates a transaction with the cluster that currently contains it.
type Entry struct {
	Txid    *chainhash.Hash
	Cluster *chainhash.Hash
}

// Store records which CPFP cluster, if any, each transaction currently
// belongs to. Writes are idempotent: SetClusters is last-write-wins per
// txid, and RemoveTransaction succeeds when the transaction is not present.
type Store interface {
	Health(ctx context.Context) (int, string, error)
	SetClusters(ctx context.Context, entries []*Entry) error
	GetCluster(ctx context.Context, txid *chainhash.Hash) (*chainhash.Hash, error)
	RemoveTransaction(ctx context.Context, txid *chainhash.Hash) error
	Close(ctx context.Context) error
}
