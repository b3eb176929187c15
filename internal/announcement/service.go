package announcement

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Title    string
	Content  string
	Priority Priority
	AuthorID string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Announcement, error)
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, filter Filter) ([]*Announcement, int, error)
	Update(ctx context.Context, id string, p Patch) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Announcement, error) {
	d := Draft{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		Priority: req.Priority,
	}
	if d.Title == "" {
		return nil, ErrTitleRequired
	}
	if d.Content == "" {
		return nil, ErrContentRequired
	}
	if d.Priority == "" {
		d.Priority = PriorityNormal
	}
	if !d.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if req.AuthorID != "" {
		author := req.AuthorID
		d.AuthorID = &author
	}

	return s.repo.Create(ctx, d)
}

func (s *service) GetByID(ctx context.Context, id string) (*Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, 0, ErrInvalidPriority
	}
	return s.repo.List(ctx, filter)
}

// Update applies p in a single statement. Blank text fields are rejected
// rather than clearing the notice.
func (s *service) Update(ctx context.Context, id string, p Patch) (*Announcement, error) {
	if p.Empty() {
		return nil, ErrEmptyPatch
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		p.Title = &title
	}
	if p.Content != nil {
		content := strings.TrimSpace(*p.Content)
		if content == "" {
			return nil, ErrContentRequired
		}
		p.Content = &content
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
