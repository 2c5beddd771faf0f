package sql

import (
	"context"
	"database/sql"
	"net/url"
	"sync"
	"time"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/settings"
	"github.com/antonilol/mempool/stores/txindex"
	"github.com/antonilol/mempool/ulogger"
	"github.com/antonilol/mempool/util"
	"github.com/antonilol/mempool/util/usql"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	_ "modernc.org/sqlite"
)

var (
	prometheusTxIndexSet    prometheus.Counter
	prometheusTxIndexGet    prometheus.Counter
	prometheusTxIndexRemove prometheus.Counter
	prometheusTxIndexErrors *prometheus.CounterVec

	// only init the metrics once
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusTxIndexSet = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_txindex_set",
			Help: "Number of txindex set_clusters calls done to sql",
		},
	)
	prometheusTxIndexGet = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_txindex_get",
			Help: "Number of txindex get_cluster calls done to sql",
		},
	)
	prometheusTxIndexRemove = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_txindex_remove",
			Help: "Number of txindex remove_transaction calls done to sql",
		},
	)
	prometheusTxIndexErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sql_txindex_errors",
			Help: "Number of txindex errors",
		},
		[]string{
			"function", // function raising the error
			"error",    // error returned
		},
	)
}

type Store struct {
	logger    ulogger.Logger
	db        *usql.DB
	engine    util.SQLEngine
	dbTimeout time.Duration
}

func New(logger ulogger.Logger, tSettings *settings.Settings, storeURL *url.URL) (*Store, error) {
	initPrometheusMetrics()

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

	return &Store{
		logger:    logger,
		db:        db,
		engine:    util.SQLEngine(storeURL.Scheme),
		dbTimeout: tSettings.TxIndex.DBTimeout,
	}, nil
}

func (s *Store) Health(ctx context.Context) (int, string, error) {
	details := "SQL TxIndex: " + string(s.engine)

	var num int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&num); err != nil {
		return -1, details, err
	}

	return 0, details, nil
}

// SetClusters records the current cluster for each transaction, overwriting
// any previous association. All entries are applied in one database transaction.
func (s *Store) SetClusters(ctx context.Context, entries []*txindex.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	q := `
		INSERT INTO cpfp_transactions (txid, cluster)
		VALUES ($1, $2)
		ON CONFLICT (txid) DO UPDATE SET cluster = excluded.cluster`

	txn, err := s.db.Begin()
	if err != nil {
		return s.storageError("SetClusters", "failed to begin transaction", err)
	}

	defer func() {
		_ = txn.Rollback()
	}()

	for _, entry := range entries {
		if entry.Txid == nil || entry.Cluster == nil {
			return errors.NewInvalidArgumentError("entry is missing txid or cluster")
		}

		if _, err = txn.ExecContext(ctx, q, entry.Txid[:], entry.Cluster[:]); err != nil {
			return s.storageError("SetClusters", "failed to set cluster for tx", err)
		}
	}

	if err = txn.Commit(); err != nil {
		return s.storageError("SetClusters", "failed to commit transaction", err)
	}

	prometheusTxIndexSet.Inc()

	return nil
}

func (s *Store) GetCluster(ctx context.Context, txid *chainhash.Hash) (*chainhash.Hash, error) {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	q := `
		SELECT cluster
		FROM cpfp_transactions
		WHERE txid = $1`

	var clusterBytes []byte
	if err := s.db.QueryRowContext(ctx, q, txid[:]).Scan(&clusterBytes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewTxNotFoundError("tx %s not found in index", txid.String())
		}

		return nil, s.storageError("GetCluster", "failed to get cluster for tx", err)
	}

	cluster, err := chainhash.NewHash(clusterBytes)
	if err != nil {
		return nil, errors.NewProcessingError("failed to convert cluster hash", err)
	}

	prometheusTxIndexGet.Inc()

	return cluster, nil
}

// RemoveTransaction clears the cluster association for txid. Removing a
// transaction that is not in the index is not an error.
func (s *Store) RemoveTransaction(ctx context.Context, txid *chainhash.Hash) error {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	q := `
		DELETE FROM cpfp_transactions
		WHERE txid = $1`

	if _, err := s.db.ExecContext(ctx, q, txid[:]); err != nil {
		return s.storageError("RemoveTransaction", "failed to remove tx from index", err)
	}

	prometheusTxIndexRemove.Inc()

	return nil
}

func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}

// storageError logs the failure with its cause and wraps it, so the caller
// always sees a storage error that has already been logged.
func (s *Store) storageError(function, message string, err error) error {
	prometheusTxIndexErrors.WithLabelValues(function, "storage").Inc()

	wrapped := errors.NewStorageError(message, err)
	s.logger.Errorf("[TxIndex] %s: %v", function, wrapped)

	return wrapped
}

func createPostgresSchema(db *usql.DB) error {
	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS cpfp_transactions (
	    txid         BYTEA PRIMARY KEY
	    ,cluster     BYTEA NOT NULL
        ,inserted_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create cpfp_transactions table", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS ix_cpfp_transactions_cluster ON cpfp_transactions (cluster);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ix_cpfp_transactions_cluster index", err)
	}

	return nil
}

func createSqliteSchema(db *usql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cpfp_transactions (
		 txid         BLOB PRIMARY KEY
	    ,cluster      BLOB NOT NULL
        ,inserted_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create cpfp_transactions table", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS ix_cpfp_transactions_cluster ON cpfp_transactions (cluster);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ix_cpfp_transactions_cluster index", err)
	}

	return nil
}
