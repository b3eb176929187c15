package transaction

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nekogravitycat/condo-backend/internal/apartment"
)

// ApartmentFinder resolves the apartment a resident owns.
type ApartmentFinder interface {
	GetMine(ctx context.Context, userID string) (*apartment.Apartment, error)
}

type Service interface {
	List(ctx context.Context, userID string, limit, offset int) ([]*Transaction, int, error)
	// ListByMonth returns the user's payments made during month (YYYY-MM, UTC).
	ListByMonth(ctx context.Context, userID, month string) ([]*Transaction, error)
}

type service struct {
	repo       Repository
	apartments ApartmentFinder
}

func NewService(repo Repository, apartments ApartmentFinder) Service {
	return &service{repo: repo, apartments: apartments}
}

func (s *service) List(ctx context.Context, userID string, limit, offset int) ([]*Transaction, int, error) {
	scope, ok, err := s.scope(ctx, userID)
	if err != nil || !ok {
		return nil, 0, err
	}

	var (
		items []*Transaction
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, scope, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *service) ListByMonth(ctx context.Context, userID, month string) ([]*Transaction, error) {
	from, err := time.ParseInLocation(MonthLayout, month, time.UTC)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	scope, ok, err := s.scope(ctx, userID)
	if err != nil || !ok {
		return nil, err
	}

	return s.repo.ListBetween(ctx, scope, from, from.AddDate(0, 1, 0))
}

// scope reports ok=false when the user owns no apartment.
func (s *service) scope(ctx context.Context, userID string) (Scope, bool, error) {
	apt, err := s.apartments.GetMine(ctx, userID)
	if err != nil {
		if errors.Is(err, apartment.ErrNotFound) {
			return Scope{}, false, nil
		}
		return Scope{}, false, err
	}
	return Scope{UserID: userID, ApartmentID: apt.ID}, true, nil
}
