package participant

import (
	"context"
	"sync"
)

// Repository is the storage contract: one statement per operation and no
// existence checks on update or delete.
type Repository interface {
	List(ctx context.Context) ([]Participant, error)
	// GetByID reports found=false, with a nil error, when no row matches.
	GetByID(ctx context.Context, id int64) (p Participant, found bool, err error)
	Create(ctx context.Context, p Participant) (int64, error)
	Update(ctx context.Context, id int64, p Participant) error
	Delete(ctx context.Context, id int64) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// running the UI without a database.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Participant
	nextID  int64
}

func NewInMemoryRepository(seed []Participant) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Participant, 0, len(seed)),
	}

	var maxID int64
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Participant, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Participant{}, false, nil
}

// Create ignores any ID on p; identifiers come from the repository only.
func (r *InMemoryRepository) Create(ctx context.Context, p Participant) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	r.storage = append(r.storage, p)
	return p.ID, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id int64, p Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			r.storage[i] = p
			return nil
		}
	}
	// no matching row is not an error, same as UPDATE ... WHERE
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return nil
}
