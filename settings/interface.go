package settings

import (
	"net/url"
	"time"
)

type ClusterStoreSettings struct {
	Store           *url.URL
	DBTimeout       time.Duration
	IndexBatchSize  int
	BatchInsertSize int
	CacheEnabled    bool
	CacheTTL        time.Duration
}

type TxIndexSettings struct {
	Store     *url.URL
	DBTimeout time.Duration
}

type TracingSettings struct {
	Enabled      bool
	SampleRate   float64
	CollectorURL string
}

type Settings struct {
	ClientName           string
	DataFolder           string
	LogLevel             string
	PostgresMaxIdleConns int
	PostgresMaxOpenConns int
	Tracing              TracingSettings
	ClusterStore         ClusterStoreSettings
	TxIndex              TxIndexSettings
}
