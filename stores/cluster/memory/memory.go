package memory

import (
	"context"
	"sync"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/stores/txindex"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

type storedCluster struct {
	height  uint32
	payload []byte
	feeRate float64
}

// Memory is an in-memory cluster store for tests and local runs. Rows are
// kept in packed form so reads round-trip through the codec exactly like
// the sql store, fee rounding included.
type Memory struct {
	mu       sync.Mutex
	txIndex  txindex.Store
	clusters map[chainhash.Hash]*storedCluster
}

func New(txIndex txindex.Store) (*Memory, error) {
	if txIndex == nil {
		return nil, errors.NewConfigurationError("cluster store requires a tx index")
	}

	return &Memory{
		txIndex:  txIndex,
		clusters: make(map[chainhash.Hash]*storedCluster),
	}, nil
}

func (m *Memory) Health(_ context.Context) (int, string, error) {
	return 0, "Memory ClusterStore", nil
}

func (m *Memory) SaveCluster(ctx context.Context, root *chainhash.Hash, height uint32, txs []*cluster.Ancestor, effectiveFeePerVsize float64) (bool, error) {
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

	m.mu.Lock()
	m.clusters[*root] = &storedCluster{
		height:  height,
		payload: cluster.PackAncestors(txs),
		feeRate: effectiveFeePerVsize,
	}
	m.mu.Unlock()

	if err := m.notifyIndex(ctx, c); err != nil {
		return true, err
	}

	return true, nil
}

func (m *Memory) BatchSaveClusters(ctx context.Context, clusters []*cluster.Cluster) (bool, error) {
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

	// index first, then the rows, matching the sql store's batch order
	for _, c := range accepted {
		if err := m.notifyIndex(ctx, c); err != nil {
			return false, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range accepted {
		// the batch path never replaces an existing row
		if _, ok := m.clusters[*c.Root]; ok {
			continue
		}

		m.clusters[*c.Root] = &storedCluster{
			height:  c.Height,
			payload: cluster.PackAncestors(c.Txs),
			feeRate: c.EffectiveFeePerVsize,
		}
	}

	return true, nil
}

func (m *Memory) GetCluster(_ context.Context, root *chainhash.Hash) (*cluster.Cluster, error) {
	if root == nil {
		return nil, errors.NewInvalidArgumentError("cluster root is required")
	}

	m.mu.Lock()
	sc, ok := m.clusters[*root]
	m.mu.Unlock()

	if !ok {
		return nil, errors.NewClusterNotFoundError("cluster %s not found", root.String())
	}

	txs, err := cluster.UnpackAncestors(sc.payload)
	if err != nil {
		return nil, err
	}

	rootCopy := *root

	return &cluster.Cluster{
		Root:                 &rootCopy,
		Height:               sc.height,
		Txs:                  txs,
		EffectiveFeePerVsize: sc.feeRate,
	}, nil
}

func (m *Memory) GetCpfpInfo(ctx context.Context, txid *chainhash.Hash) (*cluster.CpfpInfo, error) {
	root, err := m.txIndex.GetCluster(ctx, txid)
	if err != nil {
		return nil, err
	}

	c, err := m.GetCluster(ctx, root)
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

	return &cluster.CpfpInfo{
		Ancestors:            ancestors,
		EffectiveFeePerVsize: c.EffectiveFeePerVsize,
	}, nil
}

func (m *Memory) DeleteClustersFrom(ctx context.Context, height uint32) error {
	m.mu.Lock()

	var (
		roots   []chainhash.Hash
		members []*chainhash.Hash
	)

	for root, sc := range m.clusters {
		if sc.height < height {
			continue
		}

		roots = append(roots, root)

		txs, err := cluster.UnpackAncestors(sc.payload)
		if err != nil {
			m.mu.Unlock()
			return err
		}

		for _, tx := range txs {
			members = append(members, tx.Txid)
		}
	}

	m.mu.Unlock()

	if len(roots) == 0 {
		return nil
	}

	for _, txid := range members {
		if err := m.txIndex.RemoveTransaction(ctx, txid); err != nil {
			return errors.NewStorageError("failed to unlink tx %s", txid.String(), err)
		}
	}

	m.mu.Lock()
	for _, root := range roots {
		delete(m.clusters, root)
	}
	m.mu.Unlock()

	return nil
}

func (m *Memory) InsertProgressMarker(_ context.Context, height uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sc := range m.clusters {
		if sc.height == height {
			return nil
		}
	}

	root := cluster.ProgressMarkerRoot(height)

	m.clusters[*root] = &storedCluster{
		height:  height,
		payload: []byte{},
		feeRate: 0,
	}

	return nil
}

func (m *Memory) Close(_ context.Context) error {
	return nil
}

func (m *Memory) notifyIndex(ctx context.Context, c *cluster.Cluster) error {
	entries := make([]*txindex.Entry, 0, len(c.Txs))

	for _, tx := range c.Txs {
		entries = append(entries, &txindex.Entry{Txid: tx.Txid, Cluster: c.Root})
	}

	if err := m.txIndex.SetClusters(ctx, entries); err != nil {
		return errors.NewStorageError("failed to notify tx index for cluster %s", c.Root.String(), err)
	}

	return nil
}
