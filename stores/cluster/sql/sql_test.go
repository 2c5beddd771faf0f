package sql

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/antonilol/mempool/settings"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/stores/txindex"
	"github.com/antonilol/mempool/ulogger"
	"github.com/antonilol/mempool/util"
	"github.com/antonilol/mempool/util/usql"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/require"
)

func newTestSettings() *settings.Settings {
	return &settings.Settings{
		ClusterStore: settings.ClusterStoreSettings{
			DBTimeout:       5 * time.Second,
			IndexBatchSize:  10,
			BatchInsertSize: 100,
		},
	}
}

// setup creates a store on a fresh in-memory sqlite database with a mocked
// tx index.
func setup(t *testing.T, tSettings *settings.Settings) (*Store, *txindex.MockStore) {
	storeURL, err := url.Parse("sqlitememory:///cluster_test")
	require.NoError(t, err)

	idx := &txindex.MockStore{}

	s, err := New(ulogger.TestLogger{}, tSettings, storeURL, idx)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})

	return s, idx
}

// createMockSQL creates a store around a sqlmock database, for driving the
// store into storage failures that a real database will not produce.
func createMockSQL(t *testing.T) (*Store, sqlmock.Sqlmock, *txindex.MockStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	idx := &txindex.MockStore{}

	s := &Store{
		logger:          ulogger.TestLogger{},
		db:              &usql.DB{DB: db},
		engine:          util.Postgres,
		txIndex:         idx,
		dbTimeout:       5 * time.Second,
		indexBatchSize:  10,
		batchInsertSize: 100,
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return s, mock, idx
}

// makeAncestors builds n ancestors with distinct txids derived from salt.
func makeAncestors(salt string, n int, weight uint32, fee float64) []*cluster.Ancestor {
	txs := make([]*cluster.Ancestor, n)

	for i := range txs {
		hash := chainhash.HashH([]byte(fmt.Sprintf("%s-%d", salt, i)))
		txs[i] = &cluster.Ancestor{Txid: &hash, Weight: weight, Fee: fee}
	}

	return txs
}

func makeRoot(salt string) *chainhash.Hash {
	hash := chainhash.HashH([]byte("root-" + salt))
	return &hash
}

func TestNewRequiresTxIndex(t *testing.T) {
	storeURL, err := url.Parse("sqlitememory:///cluster_test")
	require.NoError(t, err)

	_, err = New(ulogger.TestLogger{}, newTestSettings(), storeURL, nil)
	require.Error(t, err)
}

func TestNewUnknownEngine(t *testing.T) {
	storeURL, err := url.Parse("aerospike:///cluster_test")
	require.NoError(t, err)

	_, err = New(ulogger.TestLogger{}, newTestSettings(), storeURL, &txindex.MockStore{})
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	s, _ := setup(t, newTestSettings())

	status, details, err := s.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, status)
	require.Contains(t, details, "sqlitememory")
}
