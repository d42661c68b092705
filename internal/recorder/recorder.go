package recorder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/domain"
	"github.com/kahvecikaan/signals/internal/events"
	"github.com/kahvecikaan/signals/internal/storage"
	"github.com/kahvecikaan/signals/signal"
)

// Replay is the recorded history of one unit's game
type Replay struct {
	ID         uuid.UUID        `json:"id"`
	Unit       domain.UnitView  `json:"unit"`
	Events     []events.Message `json:"events"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// Path returns where the replay of the unit is stored
func Path(unitID int) string {
	return fmt.Sprintf("%d/replay.json", unitID)
}

// Open returns the stored replay of the unit. The caller must close it.
func Open(store storage.Storage, unitID int) (*os.File, error) {
	f, err := store.Get(Path(unitID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, domain.ErrReplayNotFound
	}
	return f, err
}

// Recorder listens to a unit until its game is over and then saves a replay.
// It must be used under the same lock as the unit it records.
type Recorder struct {
	unit   *domain.Unit
	store  storage.Storage
	logger hclog.Logger

	conns  signal.ScopedConnectionGroup
	events []events.Message
	saved  bool
	err    error
}

// New starts recording u
func New(u *domain.Unit, store storage.Storage, logger hclog.Logger) *Recorder {
	r := &Recorder{
		unit:   u,
		store:  store,
		logger: logger.With("unit_id", u.ID),
	}

	r.conns.Add(
		u.GameEventUpdated().Connect(r.onGameEvent),
		u.PointsUpdated().Connect(r.onPoints),
	)

	return r
}

func (r *Recorder) onGameEvent(e domain.GameEvent) {
	r.events = append(r.events, events.FromGameEvent(e, r.unit.View()))
	if e != domain.GameOver {
		return
	}

	// the game is over, nothing else will be recorded
	r.conns.Clear()
	r.err = r.save()
	if r.err != nil {
		r.logger.Error("Unable to save replay", "error", r.err)
		return
	}
	r.saved = true
	r.logger.Info("Replay saved", "events", len(r.events))
}

func (r *Recorder) onPoints(int) {
	r.events = append(r.events, events.PointsUpdated(r.unit.View()))
}

func (r *Recorder) save() error {
	rp := Replay{
		ID:         uuid.New(),
		Unit:       r.unit.View(),
		Events:     r.events,
		RecordedAt: time.Now().UTC(),
	}

	b, err := json.MarshalIndent(rp, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode replay: %w", err)
	}

	return r.store.Save(Path(r.unit.ID), bytes.NewReader(b))
}

// Recording reports whether the recorder is still listening to the unit
func (r *Recorder) Recording() bool {
	return r.conns.Size() > 0
}

// Saved reports whether the replay was stored
func (r *Recorder) Saved() bool {
	return r.saved
}

// Err returns the error from saving the replay, if any
func (r *Recorder) Err() error {
	return r.err
}

// Close stops recording without saving
func (r *Recorder) Close() error {
	return r.conns.Close()
}
