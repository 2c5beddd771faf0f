package settings

import (
	"time"
)

func NewSettings() *Settings {
	return &Settings{
		ClientName:           getString("clientName", "defaultClientName"),
		DataFolder:           getString("dataFolder", "data"),
		LogLevel:             getString("logLevel", "INFO"),
		PostgresMaxIdleConns: getInt("postgresMaxIdleConns", 10),
		PostgresMaxOpenConns: getInt("postgresMaxOpenConns", 80),
		Tracing: TracingSettings{
			Enabled:      getBool("tracing_enabled", false),
			SampleRate:   getFloat64("tracing_sample_rate", 1.0),
			CollectorURL: getString("tracing_collector_url", ""),
		},
		ClusterStore: ClusterStoreSettings{
			Store:           getURL("clusterstore", "sqlitememory:///cluster"),
			DBTimeout:       getDuration("clusterstore_dbTimeout", 5*time.Second),
			IndexBatchSize:  getInt("clusterstore_indexBatchSize", 10),
			BatchInsertSize: getInt("clusterstore_batchInsertSize", 100),
			CacheEnabled:    getBool("clusterstore_cacheEnabled", true),
			CacheTTL:        getDuration("clusterstore_cacheTTL", 2*time.Minute),
		},
		TxIndex: TxIndexSettings{
			Store:     getURL("txindexstore", "sqlitememory:///txindex"),
			DBTimeout: getDuration("txindexstore_dbTimeout", 5*time.Second),
		},
	}
}
