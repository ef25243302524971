package service

import (
	"context"

	"github.com/rs/zerolog"

	"event-planner/internal/watch"
)

// liveList keeps a feed of the latest committed list of one entity type.
type liveList[T any] struct {
	feed *watch.Feed[[]T]
	list func(context.Context) ([]T, error)
	log  zerolog.Logger
}

func newLiveList[T any](list func(context.Context) ([]T, error), log zerolog.Logger) *liveList[T] {
	return &liveList[T]{feed: watch.NewFeed[[]T](), list: list, log: log}
}

// refresh reloads the list and publishes it. A failed reload after a
// committed write is logged, not returned: the write itself succeeded.
func (l *liveList[T]) refresh(ctx context.Context) ([]T, bool) {
	items, err := l.list(ctx)
	if err != nil {
		l.log.Error().Err(err).Msg("Failed to refresh list")
		return nil, false
	}
	l.feed.Publish(items)
	return items, true
}

// watch subscribes to the feed, loading the first snapshot if nothing has
// been published yet. Callers hold the owning service's write lock so the
// first snapshot cannot overwrite a newer one.
func (l *liveList[T]) watch(ctx context.Context) (<-chan []T, func(), error) {
	if _, ok := l.feed.Current(); !ok {
		items, err := l.list(ctx)
		if err != nil {
			return nil, nil, err
		}
		l.feed.Publish(items)
	}
	ch, cancel := l.feed.Subscribe()
	return ch, cancel, nil
}
