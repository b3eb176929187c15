package apartment

import "context"

type Service interface {
	GetMine(ctx context.Context, userID string) (*Apartment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetMine(ctx context.Context, userID string) (*Apartment, error) {
	return s.repo.GetByOwner(ctx, userID)
}
