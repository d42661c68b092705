package repository

import (
	"context"
	"sync"

	"github.com/kahvecikaan/signals/internal/domain"
)

type UnitRepository interface {
	GetAll(ctx context.Context) ([]*domain.Unit, error)
	GetByID(ctx context.Context, id int) (*domain.Unit, error)
	Add(ctx context.Context, unit *domain.Unit) error
	Delete(ctx context.Context, id int) (*domain.Unit, error)
}

type memoryUnitRepository struct {
	units  []*domain.Unit
	nextID int
	mutex  sync.RWMutex
}

func NewMemoryUnitRepository() UnitRepository {
	return &memoryUnitRepository{nextID: 1}
}

func (r *memoryUnitRepository) GetAll(ctx context.Context) ([]*domain.Unit, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	units := make([]*domain.Unit, len(r.units))
	copy(units, r.units)
	return units, nil
}

func (r *memoryUnitRepository) GetByID(ctx context.Context, id int) (*domain.Unit, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, unit := range r.units {
		if unit.ID == id {
			return unit, nil
		}
	}

	return nil, domain.ErrUnitNotFound
}

func (r *memoryUnitRepository) Add(ctx context.Context, unit *domain.Unit) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	unit.ID = r.nextID
	r.nextID++
	r.units = append(r.units, unit)
	return nil
}

// Delete removes the unit and returns it so the caller can release it
func (r *memoryUnitRepository) Delete(ctx context.Context, id int) (*domain.Unit, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, unit := range r.units {
		if unit.ID == id {
			r.units = append(r.units[:i], r.units[i+1:]...)
			return unit, nil
		}
	}

	return nil, domain.ErrUnitNotFound
}
