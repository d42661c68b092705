package domain

import (
	"fmt"
	"slices"

	"github.com/kahvecikaan/signals/signal"
)

// Kind is the kind of unit walking the arena
type Kind string

const (
	KindHuman  Kind = "human"
	KindZombie Kind = "zombie"
)

// ParseKind returns the Kind named by s
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindHuman, KindZombie:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// GameEvent is emitted by a unit as it walks
type GameEvent int

const (
	Walk GameEvent = iota
	GameOver
)

func (e GameEvent) String() string {
	switch e {
	case Walk:
		return "walk"
	case GameOver:
		return "game_over"
	}
	return fmt.Sprintf("GameEvent(%d)", int(e))
}

// MarshalText implements encoding.TextMarshaler
func (e GameEvent) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Rules decide at which steps a unit scores and when its game ends
type Rules struct {
	// Steps at which the unit gains a point
	PointSteps []int `json:"point_steps" yaml:"point_steps" validate:"dive,gt=0"`

	// Step at which the game is over
	GameOverStep int `json:"game_over_step" yaml:"game_over_step" validate:"required,gt=0"`
}

// DefaultRules score at steps 2 and 3 and end the game at step 5
func DefaultRules() Rules {
	return Rules{
		PointSteps:   []int{2, 3},
		GameOverStep: 5,
	}
}

// Unit is a walker in the arena. It announces what happens to it through
// signals that outside code can connect to but not fire.
//
// Unit is not safe for concurrent use.
type Unit struct {
	ID   int
	Name string
	Kind Kind

	x        int
	points   int
	gameOver bool

	gameEvent     signal.Signal[GameEvent]
	pointsUpdated signal.Signal[int]
	closed        signal.Signal[UnitView]
}

// NewUnit creates a unit at the start line. The ID is assigned by the repository.
func NewUnit(name string, kind Kind) *Unit {
	return &Unit{Name: name, Kind: kind}
}

// GameEventUpdated fires on every step and once more when the game is over
func (u *Unit) GameEventUpdated() signal.Public[GameEvent] {
	return u.gameEvent.Public()
}

// PointsUpdated fires with the new total whenever the unit scores
func (u *Unit) PointsUpdated() signal.Public[int] {
	return u.pointsUpdated.Public()
}

// Closed fires once, with the final state, when the unit leaves the arena
func (u *Unit) Closed() signal.Public[UnitView] {
	return u.closed.Public()
}

// Walk moves the unit one step forward and fires the resulting events.
func (u *Unit) Walk(rules Rules) error {
	if u.gameOver {
		return ErrGameOver
	}

	u.x++
	u.gameEvent.Invoke(Walk)

	if slices.Contains(rules.PointSteps, u.x) {
		u.points++
		u.pointsUpdated.Invoke(u.points)
	}

	if u.x >= rules.GameOverStep {
		u.gameOver = true
		u.gameEvent.Invoke(GameOver)
	}

	return nil
}

// IsGameOver reports whether the unit has finished walking
func (u *Unit) IsGameOver() bool {
	return u.gameOver
}

// Subscribers returns the number of slots connected to the unit
func (u *Unit) Subscribers() int {
	return u.gameEvent.Size() + u.pointsUpdated.Size() + u.closed.Size()
}

// View returns a snapshot of the unit
func (u *Unit) View() UnitView {
	return UnitView{
		ID:       u.ID,
		Name:     u.Name,
		Kind:     u.Kind,
		X:        u.x,
		Points:   u.points,
		GameOver: u.gameOver,
	}
}

// Close announces that the unit left the arena and disconnects every slot.
func (u *Unit) Close() {
	u.closed.Invoke(u.View())
	u.closed.Clear()
	u.gameEvent.Clear()
	u.pointsUpdated.Clear()
}

// UnitView is the public state of a unit
//
// swagger:model
type UnitView struct {
	// The ID of the unit
	//
	// required: true
	// example: 1
	ID int `json:"id"`

	// The name of the unit
	//
	// required: true
	// example: bob
	Name string `json:"name"`

	// The kind of the unit
	//
	// required: true
	// example: zombie
	Kind Kind `json:"kind"`

	// Steps walked so far
	X int `json:"x"`

	// Points scored so far
	Points int `json:"points"`

	// Whether the unit has finished walking
	GameOver bool `json:"game_over"`
}
