package cache

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"exusiai.dev/forecast-next/internal/model"
	"exusiai.dev/forecast-next/internal/pkg/cache"
)

type Flusher func(ctx context.Context) error

var (
	// RawPolls caches aggregator poll lists by "state|after|contest".
	RawPolls *cache.Set[[]*model.RawPoll]

	once sync.Once

	SetMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		initializeCaches(client)
	})
}

// Delete flushes the named cache set.
func Delete(ctx context.Context, name string) error {
	flush, ok := SetMap[name]
	if !ok {
		return errors.Errorf("cache: unknown cache set %q", name)
	}
	return flush(ctx)
}

func initializeCaches(client *redis.Client) {
	SetMap = make(map[string]Flusher)

	// pollster
	RawPolls = cache.NewSet[[]*model.RawPoll](client, "rawPolls#state|after|contest")
	SetMap["rawPolls#state|after|contest"] = RawPolls.Flush
}
