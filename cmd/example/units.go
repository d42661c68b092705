package main

import (
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/domain"
	"github.com/kahvecikaan/signals/signal"
)

// connectorFunc adapts a connect method to signal.Connector
type connectorFunc[T any] func(signal.Slot[T]) signal.Connection

func (f connectorFunc[T]) Connect(slot signal.Slot[T]) signal.Connection {
	return f(slot)
}

// walker is the state shared by every unit of the example
type walker struct {
	x      int
	points int
	rules  domain.Rules
}

func (w *walker) walk(gameEvent *signal.Signal[domain.GameEvent], pointsUpdated *signal.Signal[int]) {
	w.x++
	gameEvent.Invoke(domain.Walk)

	for _, step := range w.rules.PointSteps {
		if w.x == step {
			w.points++
			pointsUpdated.Invoke(w.points)
		}
	}

	if w.x == w.rules.GameOverStep {
		gameEvent.Invoke(domain.GameOver)
	}
}

// Human keeps its signals private and offers a connect method for each
type Human struct {
	walker
	gameEventUpdated *signal.Signal[domain.GameEvent]
	pointsUpdated    *signal.Signal[int]
}

func NewHuman(logger hclog.Logger) *Human {
	return &Human{
		walker:           walker{rules: domain.DefaultRules()},
		gameEventUpdated: signal.New[domain.GameEvent](signal.WithLogger(logger), signal.WithName("human.game_event")),
		pointsUpdated:    signal.New[int](signal.WithLogger(logger), signal.WithName("human.points")),
	}
}

func (h *Human) ConnectGameEventUpdated(slot signal.Slot[domain.GameEvent]) signal.Connection {
	return h.gameEventUpdated.Connect(slot)
}

func (h *Human) ConnectPointsUpdated(slot signal.Slot[int]) signal.Connection {
	return h.pointsUpdated.Connect(slot)
}

func (h *Human) Walk() {
	h.walk(h.gameEventUpdated, h.pointsUpdated)
}

func (h *Human) gameEvents() signal.Connector[domain.GameEvent] {
	return connectorFunc[domain.GameEvent](h.ConnectGameEventUpdated)
}

func (h *Human) pointEvents() signal.Connector[int] {
	return connectorFunc[int](h.ConnectPointsUpdated)
}

// Zombie exposes its signals as public fields that can only be connected to
type Zombie struct {
	walker
	GameEventUpdated signal.Public[domain.GameEvent]
	PointsUpdated    signal.Public[int]

	gameEventUpdated *signal.Signal[domain.GameEvent]
	pointsUpdated    *signal.Signal[int]
}

func NewZombie(logger hclog.Logger) *Zombie {
	z := &Zombie{
		walker:           walker{rules: domain.DefaultRules()},
		gameEventUpdated: signal.New[domain.GameEvent](signal.WithLogger(logger), signal.WithName("zombie.game_event")),
		pointsUpdated:    signal.New[int](signal.WithLogger(logger), signal.WithName("zombie.points")),
	}
	z.GameEventUpdated = z.gameEventUpdated.Public()
	z.PointsUpdated = z.pointsUpdated.Public()
	return z
}

// MoveFrom takes over the slots connected to o. o keeps walking but nobody
// hears it any more.
func (z *Zombie) MoveFrom(o *Zombie) {
	z.gameEventUpdated.MoveFrom(o.gameEventUpdated)
	z.pointsUpdated.MoveFrom(o.pointsUpdated)
}

func (z *Zombie) Walk() {
	z.walk(z.gameEventUpdated, z.pointsUpdated)
}

func (z *Zombie) gameEvents() signal.Connector[domain.GameEvent] {
	return z.GameEventUpdated
}

func (z *Zombie) pointEvents() signal.Connector[int] {
	return z.PointsUpdated
}
