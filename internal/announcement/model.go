package announcement

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "announcement not found")
	ErrTitleRequired   = apperror.New(http.StatusBadRequest, "title is required")
	ErrContentRequired = apperror.New(http.StatusBadRequest, "content is required")
	ErrInvalidPriority = apperror.New(http.StatusBadRequest, "priority must be one of low, normal, high")
	ErrEmptyPatch      = apperror.New(http.StatusBadRequest, "no fields to update")
)

// Priority controls the order notices are shown in; high ones stay on top.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Author is the board member who posted a notice. It is nil once the
// account is removed.
type Author struct {
	ID       string
	FullName *string
}

// Announcement is a building-wide notice.
type Announcement struct {
	ID          string
	Title       string
	Content     string
	Priority    Priority
	Author      *Author
	PublishedAt time.Time
}

// Draft is a validated notice ready to be stored.
type Draft struct {
	Title    string
	Content  string
	Priority Priority
	AuthorID *string
}

// Patch holds the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Title    *string
	Content  *string
	Priority *Priority
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Priority == nil
}

// Filter defines parameters for listing announcements.
type Filter struct {
	Keyword  string
	Priority Priority
	Limit    int
	Offset   int
}
