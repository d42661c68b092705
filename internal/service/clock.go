package service

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/metrics"
)

// Clock walks every active unit of the arena one step per tick
type Clock struct {
	arena    ArenaService
	metrics  *metrics.Metrics
	logger   hclog.Logger
	interval time.Duration

	closeCh chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

func NewClock(logger hclog.Logger, arena ArenaService, m *metrics.Metrics, interval time.Duration) *Clock {
	return &Clock{
		arena:    arena,
		metrics:  m,
		logger:   logger,
		interval: interval,
		closeCh:  make(chan struct{}),
	}
}

// Start runs the clock in the background until Close is called
func (c *Clock) Start() {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				walked, err := c.arena.WalkAll(context.Background())
				if err != nil {
					c.logger.Error("Unable to walk the arena", "error", err)
					continue
				}
				c.metrics.Ticks.Inc()
				if walked > 0 {
					c.logger.Trace("Tick", "walked", walked)
				}
			case <-c.closeCh:
				c.logger.Info("Clock received shutdown signal")
				return
			}
		}
	}()
}

// Close stops the clock and waits for the current tick to finish
func (c *Clock) Close() {
	c.once.Do(func() {
		close(c.closeCh)
	})
	c.wg.Wait()
}
