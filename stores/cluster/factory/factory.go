package factory

import (
	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/settings"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/stores/cluster/memory"
	clustersql "github.com/antonilol/mempool/stores/cluster/sql"
	"github.com/antonilol/mempool/stores/txindex"
	"github.com/antonilol/mempool/ulogger"
)

// NewStore creates the cluster store backend selected by the clusterstore
// URL. The tx index is injected so both stores can be wired independently.
func NewStore(logger ulogger.Logger, tSettings *settings.Settings, txIndex txindex.Store) (cluster.Store, error) {
	storeURL := tSettings.ClusterStore.Store
	if storeURL == nil {
		return nil, errors.NewConfigurationError("no clusterstore setting found")
	}

	switch storeURL.Scheme {
	case "postgres", "sqlite", "sqlitememory":
		return clustersql.New(logger, tSettings, storeURL, txIndex)

	case "memory":
		return memory.New(txIndex)

	default:
		return nil, errors.NewConfigurationError("unknown cluster store scheme: %s", storeURL.Scheme)
	}
}
