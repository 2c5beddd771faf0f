package sql

import (
	"sync/atomic"
	"time"

	"github.com/antonilol/mempool/stores/cluster"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/jellydator/ttlcache/v3"
)

// GenerationalCache caches cluster reads keyed by root, with generation
// tracking so a read that was in flight while a write invalidated the cache
// cannot land its stale result afterwards.
//
// The race without generations: a reader misses, queries the database, a
// write calls DeleteAll, and the reader then caches its pre-write result.
// Begin captures the generation, DeleteAll bumps it, and CacheOperation.Set
// only stores when the generation is unchanged.
type GenerationalCache struct {
	ttlCache   *ttlcache.Cache[chainhash.Hash, *cluster.Cluster]
	generation atomic.Uint64
	stopped    atomic.Bool
}

// NewGenerationalCache returns a started cache. Expired entries are cleaned
// up in the background until Stop is called.
func NewGenerationalCache() *GenerationalCache {
	gc := &GenerationalCache{
		ttlCache: ttlcache.New[chainhash.Hash, *cluster.Cluster](
			ttlcache.WithDisableTouchOnHit[chainhash.Hash, *cluster.Cluster](),
		),
	}

	go gc.ttlCache.Start()

	return gc
}

// Begin starts a read operation against the cache, capturing the current
// generation for a later Set.
func (gc *GenerationalCache) Begin(root chainhash.Hash) *CacheOperation {
	return &CacheOperation{
		generationalCache: gc,
		root:              root,
		generation:        gc.generation.Load(),
	}
}

// DeleteAll clears the cache and bumps the generation, cutting off any
// in-flight operations from caching their results.
func (gc *GenerationalCache) DeleteAll() {
	gc.ttlCache.DeleteAll()
	gc.generation.Add(1)
}

// Stop halts background cleanup. Safe to call more than once.
func (gc *GenerationalCache) Stop() {
	if gc.stopped.CompareAndSwap(false, true) {
		gc.ttlCache.Stop()
	}
}

// CacheOperation is a single get-query-set round against the cache, pinned
// to the generation it started in.
type CacheOperation struct {
	generationalCache *GenerationalCache
	root              chainhash.Hash
	generation        uint64 // captured at Begin time
}

// Get returns the cached cluster for the operation's root, or nil on miss.
func (co *CacheOperation) Get() *cluster.Cluster {
	item := co.generationalCache.ttlCache.Get(co.root)
	if item == nil {
		return nil
	}

	return item.Value()
}

// Set caches the cluster unless the generation moved since Begin. Returns
// whether the value was stored.
func (co *CacheOperation) Set(c *cluster.Cluster, ttl time.Duration) bool {
	if co.generation != co.generationalCache.generation.Load() {
		return false
	}

	co.generationalCache.ttlCache.Set(co.root, c, ttl)

	return true
}
