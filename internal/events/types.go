package events

import "github.com/kahvecikaan/signals/internal/domain"

// Message types sent to watchers
const (
	TypeWalk          = "walk"
	TypeGameOver      = "game_over"
	TypePointsUpdated = "points_updated"
	TypeUnitRemoved   = "unit_removed"
)

// Message is a single unit event as delivered to watchers and stored in replays
type Message struct {
	EventType string          `json:"event-type"`
	UnitID    int             `json:"unit-id"`
	Data      domain.UnitView `json:"data"`
}

// FromGameEvent builds the message for a game event fired by the unit in state v
func FromGameEvent(e domain.GameEvent, v domain.UnitView) Message {
	t := TypeWalk
	if e == domain.GameOver {
		t = TypeGameOver
	}
	return Message{EventType: t, UnitID: v.ID, Data: v}
}

// PointsUpdated builds the message for a unit that scored
func PointsUpdated(v domain.UnitView) Message {
	return Message{EventType: TypePointsUpdated, UnitID: v.ID, Data: v}
}

// UnitRemoved builds the message for a unit leaving the arena
func UnitRemoved(v domain.UnitView) Message {
	return Message{EventType: TypeUnitRemoved, UnitID: v.ID, Data: v}
}
