package service

import (
	"context"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/domain"
	"github.com/kahvecikaan/signals/internal/events"
	"github.com/kahvecikaan/signals/internal/metrics"
	"github.com/kahvecikaan/signals/internal/recorder"
	"github.com/kahvecikaan/signals/internal/repository"
	"github.com/kahvecikaan/signals/internal/storage"
	"github.com/kahvecikaan/signals/signal"
)

// watchBuffer is the number of messages a watcher may fall behind before
// messages are dropped
const watchBuffer = 64

// Status summarizes the arena
type Status struct {
	Units  int `json:"units"`
	Active int `json:"active"`
}

type ArenaService interface {
	List(ctx context.Context) ([]domain.UnitView, error)
	Get(ctx context.Context, id int) (domain.UnitView, error)
	Spawn(ctx context.Context, req domain.SpawnRequest) (domain.UnitView, error)
	Remove(ctx context.Context, id int) error
	Walk(ctx context.Context, id int, steps int) (domain.UnitView, error)
	WalkAll(ctx context.Context) (int, error)
	Watch(ctx context.Context, id int) (*Subscription, error)
	Replay(ctx context.Context, id int) (*os.File, error)
	Status() Status
	WatchStatus(slot signal.Slot[Status]) (cancel func())
	Close() error
}

// arenaService owns the units and every slot connected to them. Signals are
// not safe for concurrent use so all access to units goes through mutex,
// including connecting and disconnecting.
type arenaService struct {
	repo    repository.UnitRepository
	store   storage.Storage
	metrics *metrics.Metrics
	rules   domain.Rules
	logger  hclog.Logger

	mutex     sync.Mutex
	recorders map[int]*recorder.Recorder
	conns     signal.ScopedConnectionGroup
	status    *signal.Signal[Status]
	once      sync.Once
}

func NewArenaService(
	logger hclog.Logger,
	repo repository.UnitRepository,
	store storage.Storage,
	m *metrics.Metrics,
	rules domain.Rules) ArenaService {
	return &arenaService{
		repo:      repo,
		store:     store,
		metrics:   m,
		rules:     rules,
		logger:    logger,
		recorders: make(map[int]*recorder.Recorder),
		status:    signal.New[Status](signal.WithLogger(logger), signal.WithName("status")),
	}
}

func (s *arenaService) List(ctx context.Context) ([]domain.UnitView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	units, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Unable to get units", "error", err)
		return nil, err
	}

	views := make([]domain.UnitView, len(units))
	for i, u := range units {
		views[i] = u.View()
	}
	return views, nil
}

func (s *arenaService) Get(ctx context.Context, id int) (domain.UnitView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.UnitView{}, err
	}
	return u.View(), nil
}

func (s *arenaService) Spawn(ctx context.Context, req domain.SpawnRequest) (domain.UnitView, error) {
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return domain.UnitView{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	u := domain.NewUnit(req.Name, kind)
	if err := s.repo.Add(ctx, u); err != nil {
		s.logger.Error("Unable to add unit", "error", err)
		return domain.UnitView{}, err
	}

	s.recorders[u.ID] = recorder.New(u, s.store, s.logger.Named("recorder"))

	s.conns.Add(
		u.GameEventUpdated().Connect(func(e domain.GameEvent) {
			s.metrics.EventsTotal.WithLabelValues(e.String()).Inc()
			if e == domain.GameOver {
				s.logger.Info("Game over", "unit_id", u.ID, "points", u.View().Points)
				s.fireStatusLocked()
			}
		}),
		u.PointsUpdated().Connect(func(int) {
			s.metrics.PointsTotal.Inc()
		}),
	)

	s.logger.Info("Unit spawned", "unit_id", u.ID, "name", u.Name, "kind", u.Kind)
	s.fireStatusLocked()

	return u.View(), nil
}

// Remove takes the unit out of the arena. Watchers receive a final
// unit_removed message and their subscriptions end.
func (s *arenaService) Remove(ctx context.Context, id int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if r, ok := s.recorders[id]; ok {
		r.Close()
		delete(s.recorders, id)
	}

	u.Close()
	// drop the metric slots that died with the unit
	s.conns.CleanUp()

	s.logger.Info("Unit removed", "unit_id", id)
	s.fireStatusLocked()
	return nil
}

// Walk walks the unit up to steps steps, stopping early when its game ends.
func (s *arenaService) Walk(ctx context.Context, id int, steps int) (domain.UnitView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.UnitView{}, err
	}

	if u.IsGameOver() {
		return u.View(), domain.ErrGameOver
	}

	for i := 0; i < steps && !u.IsGameOver(); i++ {
		if err := u.Walk(s.rules); err != nil {
			return u.View(), err
		}
	}

	s.logger.Debug("Unit walked", "unit_id", id, "view", u.View())
	return u.View(), nil
}

// WalkAll walks every unit still in the game one step and returns how many walked
func (s *arenaService) WalkAll(ctx context.Context) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	units, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	walked := 0
	for _, u := range units {
		if u.IsGameOver() {
			continue
		}
		if err := u.Walk(s.rules); err != nil {
			return walked, err
		}
		walked++
	}
	return walked, nil
}

// Watch subscribes to the events of a unit
func (s *arenaService) Watch(ctx context.Context, id int) (*Subscription, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		feed:   events.NewFeed[events.Message](watchBuffer),
		arena:  s,
		unitID: id,
	}
	sub.conns.Add(
		u.GameEventUpdated().Connect(func(e domain.GameEvent) {
			sub.publish(events.FromGameEvent(e, u.View()))
		}),
		u.PointsUpdated().Connect(func(int) {
			sub.publish(events.PointsUpdated(u.View()))
		}),
		u.Closed().Connect(func(v domain.UnitView) {
			sub.publish(events.UnitRemoved(v))
			sub.closeLocked()
		}),
	)

	s.metrics.Subscribers.Inc()
	s.logger.Debug("Watching unit", "unit_id", id)
	return sub, nil
}

// Replay returns the replay stored when the unit's game ended. Replays
// outlive the unit.
func (s *arenaService) Replay(ctx context.Context, id int) (*os.File, error) {
	return recorder.Open(s.store, id)
}

func (s *arenaService) Status() Status {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.statusLocked()
}

// WatchStatus calls slot with the current status and again whenever it
// changes, until cancel is called. slot runs with the arena locked and
// must not call back into the service.
func (s *arenaService) WatchStatus(slot signal.Slot[Status]) (cancel func()) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	conn := s.status.Public().Connect(slot)
	slot(s.statusLocked())

	return func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		conn.Disconnect()
	}
}

func (s *arenaService) statusLocked() Status {
	units, err := s.repo.GetAll(context.Background())
	if err != nil {
		s.logger.Error("Unable to get units", "error", err)
		return Status{}
	}

	st := Status{Units: len(units)}
	for _, u := range units {
		if !u.IsGameOver() {
			st.Active++
		}
	}
	return st
}

func (s *arenaService) fireStatusLocked() {
	st := s.statusLocked()
	s.metrics.Units.Set(float64(st.Units))
	s.status.Invoke(st)
}

// Close removes every unit, ending all subscriptions
func (s *arenaService) Close() error {
	s.once.Do(func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		units, err := s.repo.GetAll(context.Background())
		if err != nil {
			s.logger.Error("Unable to get units", "error", err)
		}
		for _, u := range units {
			if r, ok := s.recorders[u.ID]; ok {
				r.Close()
			}
			u.Close()
		}
		clear(s.recorders)
		s.conns.Clear()
		s.status.Clear()

		s.logger.Info("Arena closed", "units", len(units))
	})
	return nil
}
