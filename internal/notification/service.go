package notification

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Service interface {
	List(ctx context.Context, userID string, limit, offset int) (*Page, error)
	MarkRead(ctx context.Context, id, userID string) (*Notification, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID string, limit, offset int) (*Page, error) {
	g, ctx := errgroup.WithContext(ctx)
	page := &Page{}

	g.Go(func() error {
		items, err := s.repo.List(ctx, userID, limit, offset)
		page.Items = items
		return err
	})
	g.Go(func() error {
		total, unread, err := s.repo.Count(ctx, userID)
		page.Total, page.Unread = total, unread
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *service) MarkRead(ctx context.Context, id, userID string) (*Notification, error) {
	return s.repo.MarkRead(ctx, id, userID)
}
