package database

import (
	"context"
	"sync"

	"github.com/xavierca1/lead-intake/internal/entity"
)

var _ entity.LeadRepositoryInterface = (*MemoryLeadRepository)(nil)

// MemoryLeadRepository keeps leads in process memory. It follows the same
// contract as LeadRepository, including version conflicts.
type MemoryLeadRepository struct {
	mu     sync.RWMutex
	leads  map[int64]entity.Lead
	nextID int64
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{
		leads:  make(map[int64]entity.Lead),
		nextID: 1,
	}
}

func (r *MemoryLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, &entity.PersistenceError{Op: "find_by_id", Err: err}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	return cloneLead(stored), nil
}

func (r *MemoryLeadRepository) FindByStatus(ctx context.Context, status entity.LeadStatus) ([]*entity.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, &entity.PersistenceError{Op: "find_by_status", Err: err}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	leads := make([]*entity.Lead, 0)
	for id := int64(1); id < r.nextID; id++ {
		stored, ok := r.leads[id]
		if ok && stored.Status == status {
			leads = append(leads, cloneLead(stored))
		}
	}
	return leads, nil
}

func (r *MemoryLeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return &entity.PersistenceError{Op: "save", Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.leads[lead.ID]
	if !ok {
		return entity.ErrLeadNotFound
	}
	if stored.Version != lead.Version {
		return entity.ErrLeadConflict
	}

	lead.Touch()
	lead.Version++
	r.leads[lead.ID] = *cloneLead(*lead)
	return nil
}

func (r *MemoryLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return &entity.PersistenceError{Op: "create", Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lead.ID = r.nextID
	lead.Version = 0
	r.nextID++
	r.leads[lead.ID] = *cloneLead(*lead)
	return nil
}

// cloneLead copies the JobID pointer target so callers never share state with the map.
func cloneLead(l entity.Lead) *entity.Lead {
	if l.JobID != nil {
		id := *l.JobID
		l.JobID = &id
	}
	return &l
}
