package sql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetClusterNotFound(t *testing.T) {
	s, _ := setup(t, newTestSettings())

	_, err := s.GetCluster(context.Background(), makeRoot("missing"))
	require.ErrorIs(t, err, errors.ErrClusterNotFound)
}

func TestGetClusterNilRoot(t *testing.T) {
	s, _ := setup(t, newTestSettings())

	_, err := s.GetCluster(context.Background(), nil)
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func TestGetClusterEmptyMembersIsValid(t *testing.T) {
	s, _ := setup(t, newTestSettings())

	require.NoError(t, s.InsertProgressMarker(context.Background(), 800000))

	// a progress marker reads back as a cluster with no members
	c, err := s.GetCluster(context.Background(), cluster.ProgressMarkerRoot(800000))
	require.NoError(t, err)
	require.NotNil(t, c.Txs)
	require.Empty(t, c.Txs)
	require.Equal(t, uint32(800000), c.Height)
	require.Equal(t, 0.0, c.EffectiveFeePerVsize)
}

func TestGetClusterMalformedPayload(t *testing.T) {
	s, _ := setup(t, newTestSettings())

	root := makeRoot("malformed")

	// a row whose payload is not a whole number of records
	_, err := s.db.Exec(`
		INSERT INTO cpfp_clusters (root, height, txs, fee_rate)
		VALUES ($1, $2, $3, $4)`, root[:], 100, make([]byte, 43), 10.0)
	require.NoError(t, err)

	_, err = s.GetCluster(context.Background(), root)
	require.ErrorIs(t, err, errors.ErrMalformedPayload)
}

func TestGetClusterCachesReads(t *testing.T) {
	tSettings := newTestSettings()
	tSettings.ClusterStore.CacheEnabled = true
	tSettings.ClusterStore.CacheTTL = time.Minute

	s, idx := setup(t, tSettings)
	idx.On("SetClusters", mock.Anything, mock.Anything).Return(nil)

	root := makeRoot("cached")

	txs := makeAncestors("cached", 2, 400, 1000)
	txs[0].Fee = 500

	saved, err := s.SaveCluster(context.Background(), root, 100, txs, 7.5)
	require.NoError(t, err)
	require.True(t, saved)

	c, err := s.GetCluster(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, c.Txs, 2)

	// remove the row behind the store's back, the cached read still serves
	_, err = s.db.Exec(`DELETE FROM cpfp_clusters WHERE root = $1`, root[:])
	require.NoError(t, err)

	c, err = s.GetCluster(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, c.Txs, 2)

	// any write invalidates the whole cache
	otherTxs := makeAncestors("cached-other", 2, 400, 1000)
	otherTxs[0].Fee = 500

	saved, err = s.SaveCluster(context.Background(), makeRoot("cached-other"), 101, otherTxs, 7.5)
	require.NoError(t, err)
	require.True(t, saved)

	_, err = s.GetCluster(context.Background(), root)
	require.ErrorIs(t, err, errors.ErrClusterNotFound)
}

func TestGetClusterStorageError(t *testing.T) {
	s, dbMock, _ := createMockSQL(t)

	dbMock.ExpectQuery("SELECT height, txs, fee_rate").WillReturnError(sql.ErrConnDone)

	_, err := s.GetCluster(context.Background(), makeRoot("dberr"))
	require.ErrorIs(t, err, errors.ErrStorageError)

	require.NoError(t, dbMock.ExpectationsWereMet())
}
