package tracing

import (
	"context"
	"time"

	"github.com/ordishs/gocore"
)

type statsKey struct{}

var defaultStat = gocore.NewStat("no root", true)

// NewStatFromContext creates a new stat under the given parent and stores it in the context.
// The parent stat passed in takes precedence over any stat already in the context.
func NewStatFromContext(ctx context.Context, name string, parentStat *gocore.Stat, options ...bool) (time.Time, *gocore.Stat, context.Context) {
	stat := parentStat.NewStat(name, options...)

	ctx = context.WithValue(ctx, statsKey{}, stat)

	return gocore.CurrentTime(), stat, ctx
}

// StartStatFromContext creates a new stat under the stat stored in the context, if any.
func StartStatFromContext(ctx context.Context, name string, options ...bool) (time.Time, *gocore.Stat, context.Context) {
	parentStat, ok := ctx.Value(statsKey{}).(*gocore.Stat)
	if !ok {
		parentStat = defaultStat
	}

	stat := parentStat.NewStat(name, options...)

	ctx = context.WithValue(ctx, statsKey{}, stat)

	return gocore.CurrentTime(), stat, ctx
}

// StatFromContext returns the stat stored in the context, or the default stat if none is set.
func StatFromContext(ctx context.Context) *gocore.Stat {
	stat, ok := ctx.Value(statsKey{}).(*gocore.Stat)
	if !ok {
		return defaultStat
	}

	return stat
}
