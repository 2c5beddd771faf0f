package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// check settings object is initialised
func TestInitialiseSettings(t *testing.T) {
	tSettings := NewSettings()

	require.NotNil(t, tSettings.ClusterStore)
	require.NotNil(t, tSettings.ClusterStore.Store)
	require.NotNil(t, tSettings.TxIndex)
	require.NotNil(t, tSettings.TxIndex.Store)

	require.Equal(t, "sqlitememory", tSettings.ClusterStore.Store.Scheme)
	require.Equal(t, "sqlitememory", tSettings.TxIndex.Store.Scheme)
}

func TestClusterStoreDefaults(t *testing.T) {
	tSettings := NewSettings()

	require.Equal(t, 10, tSettings.ClusterStore.IndexBatchSize)
	require.Equal(t, 100, tSettings.ClusterStore.BatchInsertSize)
	require.Equal(t, 5*time.Second, tSettings.ClusterStore.DBTimeout)
	require.True(t, tSettings.ClusterStore.CacheEnabled)
	require.Equal(t, 2*time.Minute, tSettings.ClusterStore.CacheTTL)
}

func TestSettingOverridesFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envKey   string
		envValue string
		check    func(t *testing.T, s *Settings)
	}{
		{
			name:     "clusterstore batch size",
			envKey:   "clusterstore_indexBatchSize",
			envValue: "25",
			check: func(t *testing.T, s *Settings) {
				require.Equal(t, 25, s.ClusterStore.IndexBatchSize)
			},
		},
		{
			name:     "clusterstore db timeout",
			envKey:   "clusterstore_dbTimeout",
			envValue: "30s",
			check: func(t *testing.T, s *Settings) {
				require.Equal(t, 30*time.Second, s.ClusterStore.DBTimeout)
			},
		},
		{
			name:     "txindex store url",
			envKey:   "txindexstore",
			envValue: "memory:///",
			check: func(t *testing.T, s *Settings) {
				require.Equal(t, "memory", s.TxIndex.Store.Scheme)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envValue)

			tSettings := NewSettings()
			tt.check(t, tSettings)
		})
	}
}
