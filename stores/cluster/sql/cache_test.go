package sql

import (
	"testing"
	"time"

	"github.com/antonilol/mempool/stores/cluster"
	"github.com/stretchr/testify/require"
)

func TestGenerationalCacheSetGet(t *testing.T) {
	gc := NewGenerationalCache()
	defer gc.Stop()

	root := makeRoot("cache")
	c := &cluster.Cluster{Root: root, Height: 100}

	op := gc.Begin(*root)
	require.Nil(t, op.Get())

	require.True(t, op.Set(c, time.Minute))
	require.Equal(t, c, gc.Begin(*root).Get())
}

func TestGenerationalCacheDeleteAll(t *testing.T) {
	gc := NewGenerationalCache()
	defer gc.Stop()

	root := makeRoot("cache-del")
	c := &cluster.Cluster{Root: root, Height: 100}

	require.True(t, gc.Begin(*root).Set(c, time.Minute))

	gc.DeleteAll()
	require.Nil(t, gc.Begin(*root).Get())
}

func TestGenerationalCacheRejectsStaleSet(t *testing.T) {
	gc := NewGenerationalCache()
	defer gc.Stop()

	root := makeRoot("cache-stale")
	c := &cluster.Cluster{Root: root, Height: 100}

	// the read began before the invalidation, its result must not land
	op := gc.Begin(*root)
	gc.DeleteAll()

	require.False(t, op.Set(c, time.Minute))
	require.Nil(t, gc.Begin(*root).Get())
}

func TestGenerationalCacheStopTwice(t *testing.T) {
	gc := NewGenerationalCache()

	gc.Stop()
	gc.Stop()
}
