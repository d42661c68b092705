package service

import (
	"github.com/kahvecikaan/signals/internal/events"
	"github.com/kahvecikaan/signals/signal"
)

// Subscription delivers the events of one unit. The channel is closed when
// the subscription is closed or the unit leaves the arena.
type Subscription struct {
	feed   *events.Feed[events.Message]
	conns  signal.ScopedConnectionGroup
	arena  *arenaService
	unitID int
	closed bool
}

// C returns the channel events are delivered on
func (sub *Subscription) C() <-chan events.Message {
	return sub.feed.C()
}

// UnitID returns the ID of the watched unit
func (sub *Subscription) UnitID() int {
	return sub.unitID
}

// Close ends the subscription. It is safe to call more than once.
func (sub *Subscription) Close() error {
	sub.arena.mutex.Lock()
	defer sub.arena.mutex.Unlock()

	sub.closeLocked()
	return nil
}

func (sub *Subscription) publish(m events.Message) {
	if !sub.feed.Publish(m) {
		sub.arena.metrics.Dropped.Inc()
		sub.arena.logger.Warn("Watcher too slow, message dropped", "unit_id", sub.unitID, "event", m.EventType)
	}
}

func (sub *Subscription) closeLocked() {
	if sub.closed {
		return
	}
	sub.closed = true

	sub.conns.Clear()
	sub.feed.Close()
	sub.arena.metrics.Subscribers.Dec()
}
