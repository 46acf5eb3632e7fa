package participant

import "context"

// Service is a thin pass-through to the repository; each call maps to one
// statement.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Participant, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Participant, bool, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores p and returns the storage-assigned ID. Any ID already set on
// p is discarded.
func (s *Service) Create(ctx context.Context, p Participant) (int64, error) {
	p.ID = 0
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, p Participant) error {
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
