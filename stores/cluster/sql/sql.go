package sql

import (
	"context"
	"net/url"
	"time"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/settings"
	"github.com/antonilol/mempool/stores/cluster"
	"github.com/antonilol/mempool/stores/txindex"
	"github.com/antonilol/mempool/ulogger"
	"github.com/antonilol/mempool/util"
	"github.com/antonilol/mempool/util/usql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store is the SQL cluster store. It owns the cpfp_clusters table and keeps
// the injected tx index consistent with every cluster write and removal.
type Store struct {
	logger          ulogger.Logger
	db              *usql.DB
	engine          util.SQLEngine
	txIndex         txindex.Store
	dbTimeout       time.Duration
	indexBatchSize  int
	batchInsertSize int
	cacheTTL        time.Duration
	responseCache   *GenerationalCache
}

func New(logger ulogger.Logger, tSettings *settings.Settings, storeURL *url.URL, txIndex txindex.Store) (*Store, error) {
	initPrometheusMetrics()

	if txIndex == nil {
		return nil, errors.NewConfigurationError("cluster store requires a tx index")
	}

	db, err := util.InitSQLDB(logger, storeURL, tSettings)
	if err != nil {
		return nil, errors.NewStorageError("failed to init sql db", err)
	}

	switch util.SQLEngine(storeURL.Scheme) {
	case util.Postgres:
		if err = createPostgresSchema(db); err != nil {
			return nil, errors.NewStorageError("failed to create postgres schema", err)
		}

	case util.Sqlite, util.SqliteMemory:
		if err = createSqliteSchema(db); err != nil {
			return nil, errors.NewStorageError("failed to create sqlite schema", err)
		}

	default:
		return nil, errors.NewConfigurationError("unknown database engine: %s", storeURL.Scheme)
	}

	s := &Store{
		logger:          logger,
		db:              db,
		engine:          util.SQLEngine(storeURL.Scheme),
		txIndex:         txIndex,
		dbTimeout:       tSettings.ClusterStore.DBTimeout,
		indexBatchSize:  tSettings.ClusterStore.IndexBatchSize,
		batchInsertSize: tSettings.ClusterStore.BatchInsertSize,
		cacheTTL:        tSettings.ClusterStore.CacheTTL,
	}

	if tSettings.ClusterStore.CacheEnabled {
		s.responseCache = NewGenerationalCache()
	}

	return s, nil
}

func (s *Store) Health(ctx context.Context) (int, string, error) {
	details := "SQL ClusterStore: " + string(s.engine)

	var num int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&num); err != nil {
		return -1, details, err
	}

	return 0, details, nil
}

func (s *Store) Close(_ context.Context) error {
	if s.responseCache != nil {
		s.responseCache.Stop()
	}

	return s.db.Close()
}

// storageError counts and logs a storage failure with its cause before it
// surfaces to the caller. Failures are never retried here.
func (s *Store) storageError(function string, err error) error {
	prometheusClusterErrors.WithLabelValues(function, "storage").Inc()
	s.logger.Errorf("[ClusterStore] %s: %v", function, err)

	return err
}

// isUniqueViolation reports whether err is a duplicate key error from either
// database engine.
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return true
	}

	if sqliteErr, ok := err.(*sqlite.Error); ok && (sqliteErr.Code()&0xff) == sqlite3.SQLITE_CONSTRAINT {
		return true
	}

	return false
}

// invalidateCache drops all cached reads and bumps the cache generation so
// in-flight reads cannot land stale results.
func (s *Store) invalidateCache() {
	if s.responseCache != nil {
		s.responseCache.DeleteAll()
	}
}

// notifyIndex submits every member's txid to cluster association, chunked to
// bound the size of any single index call. Every member is covered exactly
// once; chunk order carries no meaning.
func (s *Store) notifyIndex(ctx context.Context, clusters []*cluster.Cluster, batchSize int) error {
	var total int
	for _, c := range clusters {
		total += len(c.Txs)
	}

	entries := make([]*txindex.Entry, 0, total)

	for _, c := range clusters {
		for _, tx := range c.Txs {
			entries = append(entries, &txindex.Entry{Txid: tx.Txid, Cluster: c.Root})
		}
	}

	return util.InBatches(entries, batchSize, func(batch []*txindex.Entry) error {
		return s.txIndex.SetClusters(ctx, batch)
	})
}

func createPostgresSchema(db *usql.DB) error {
	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS cpfp_clusters (
	    root         BYTEA PRIMARY KEY
	    ,height      BIGINT NOT NULL
	    ,txs         BYTEA NULL
	    ,fee_rate    DOUBLE PRECISION NOT NULL DEFAULT 0
        ,inserted_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create cpfp_clusters table", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS ix_cpfp_clusters_height ON cpfp_clusters (height);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ix_cpfp_clusters_height index", err)
	}

	return nil
}

func createSqliteSchema(db *usql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cpfp_clusters (
		 root         BLOB PRIMARY KEY
	    ,height       BIGINT NOT NULL
	    ,txs          BLOB NULL
	    ,fee_rate     REAL NOT NULL DEFAULT 0
        ,inserted_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create cpfp_clusters table", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS ix_cpfp_clusters_height ON cpfp_clusters (height);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ix_cpfp_clusters_height index", err)
	}

	return nil
}
