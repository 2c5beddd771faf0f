package redis

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/settings"
	"github.com/antonilol/mempool/stores/txindex"
	"github.com/antonilol/mempool/ulogger"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/redis/go-redis/v9"
)

// Store keeps the tx to cluster index in redis, keyed by the transaction's
// display hex string with the cluster's display hex string as value.
type Store struct {
	logger    ulogger.Logger
	url       *url.URL
	rdb       redis.UniversalClient
	dbTimeout time.Duration
}

func New(logger ulogger.Logger, tSettings *settings.Settings, storeURL *url.URL, password ...string) (*Store, error) {
	o := &redis.Options{
		Addr: storeURL.Host,
	}

	if len(storeURL.Path) > 1 {
		db, err := strconv.Atoi(storeURL.Path[1:])
		if err != nil {
			return nil, errors.NewConfigurationError("redis path must be an integer", err)
		}

		o.DB = db
	}

	if storeURL.User != nil {
		if storeURL.User.Username() != "" {
			o.Username = storeURL.User.Username()
		}

		if p, ok := storeURL.User.Password(); ok {
			o.Password = p
		}
	}

	// If optional password is set, override...
	if len(password) > 0 && password[0] != "" {
		o.Password = password[0]
	}

	return &Store{
		logger:    logger,
		url:       storeURL,
		rdb:       redis.NewClient(o),
		dbTimeout: tSettings.TxIndex.DBTimeout,
	}, nil
}

func (s *Store) Health(ctx context.Context) (int, string, error) {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return -1, "Redis TxIndex", err
	}

	return 0, "Redis TxIndex", nil
}

func (s *Store) SetClusters(ctx context.Context, entries []*txindex.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	pairs := make([]interface{}, 0, len(entries)*2)

	for _, entry := range entries {
		if entry.Txid == nil || entry.Cluster == nil {
			return errors.NewInvalidArgumentError("entry is missing txid or cluster")
		}

		pairs = append(pairs, entry.Txid.String(), entry.Cluster.String())
	}

	if err := s.rdb.MSet(ctx, pairs...).Err(); err != nil {
		wrapped := errors.NewStorageError("failed to set clusters in redis", err)
		s.logger.Errorf("[TxIndex] SetClusters: %v", wrapped)

		return wrapped
	}

	return nil
}

func (s *Store) GetCluster(ctx context.Context, txid *chainhash.Hash) (*chainhash.Hash, error) {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	res := s.rdb.Get(ctx, txid.String())
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, errors.NewTxNotFoundError("tx %s not found in index", txid.String())
		}

		wrapped := errors.NewStorageError("failed to get cluster from redis", res.Err())
		s.logger.Errorf("[TxIndex] GetCluster: %v", wrapped)

		return nil, wrapped
	}

	cluster, err := chainhash.NewHashFromStr(res.Val())
	if err != nil {
		return nil, errors.NewProcessingError("failed to convert cluster hash", err)
	}

	return cluster, nil
}

func (s *Store) RemoveTransaction(ctx context.Context, txid *chainhash.Hash) error {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	if err := s.rdb.Del(ctx, txid.String()).Err(); err != nil {
		wrapped := errors.NewStorageError("failed to remove tx from redis", err)
		s.logger.Errorf("[TxIndex] RemoveTransaction: %v", wrapped)

		return wrapped
	}

	return nil
}

func (s *Store) Close(_ context.Context) error {
	return s.rdb.Close()
}
