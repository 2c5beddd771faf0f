package factory

import (
	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/settings"
	"github.com/antonilol/mempool/stores/txindex"
	"github.com/antonilol/mempool/stores/txindex/memory"
	"github.com/antonilol/mempool/stores/txindex/redis"
	txindexsql "github.com/antonilol/mempool/stores/txindex/sql"
	"github.com/antonilol/mempool/ulogger"
)

// NewStore creates the tx index backend selected by the txindexstore URL.
func NewStore(logger ulogger.Logger, tSettings *settings.Settings) (txindex.Store, error) {
	storeURL := tSettings.TxIndex.Store
	if storeURL == nil {
		return nil, errors.NewConfigurationError("no txindexstore setting found")
	}

	switch storeURL.Scheme {
	case "postgres", "sqlite", "sqlitememory":
		return txindexsql.New(logger, tSettings, storeURL)

	case "redis":
		return redis.New(logger, tSettings, storeURL)

	case "memory":
		return memory.New(), nil

	default:
		return nil, errors.NewConfigurationError("unknown txindex store scheme: %s", storeURL.Scheme)
	}
}
