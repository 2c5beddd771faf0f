package memory

import (
	"context"
	"sync"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/stores/txindex"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

type Memory struct {
	mu       sync.Mutex
	clusters map[chainhash.Hash]chainhash.Hash
}

func New() *Memory {
	return &Memory{
		clusters: make(map[chainhash.Hash]chainhash.Hash),
	}
}

func (m *Memory) Health(_ context.Context) (int, string, error) {
	return 0, "Memory TxIndex", nil
}

func (m *Memory) SetClusters(_ context.Context, entries []*txindex.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range entries {
		if entry.Txid == nil || entry.Cluster == nil {
			return errors.NewInvalidArgumentError("entry is missing txid or cluster")
		}

		m.clusters[*entry.Txid] = *entry.Cluster
	}

	return nil
}

func (m *Memory) GetCluster(_ context.Context, txid *chainhash.Hash) (*chainhash.Hash, error) {
	m.mu.Lock()
	cluster, ok := m.clusters[*txid]
	m.mu.Unlock()

	if !ok {
		return nil, errors.NewTxNotFoundError("tx %s not found in index", txid.String())
	}

	return &cluster, nil
}

func (m *Memory) RemoveTransaction(_ context.Context, txid *chainhash.Hash) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clusters, *txid)

	return nil
}

func (m *Memory) Close(_ context.Context) error {
	return nil
}
