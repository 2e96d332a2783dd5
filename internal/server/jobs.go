package server

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/shashiranjanraj/dinein/pkg/cache"
	"github.com/shashiranjanraj/dinein/pkg/logger"
)

// startCartSweeper drops abandoned in-memory carts every interval. Redis
// expires its own keys, so only the memory store needs this.
func startCartSweeper(store *cache.MemoryStore, interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if n := store.Sweep(); n > 0 {
				logger.Info("carts: swept expired carts", "removed", n)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("scheduler: cart sweep: %w", err)
	}

	s.Start()
	return s, nil
}
