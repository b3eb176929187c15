package http

import (
	"time"

	"github.com/nekogravitycat/condo-backend/internal/announcement"
	"github.com/nekogravitycat/condo-backend/internal/pkg/request"
)

type AuthorResponse struct {
	ID       string  `json:"id"`
	FullName *string `json:"fullName"`
}

type AnnouncementResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Priority    string          `json:"priority"`
	Author      *AuthorResponse `json:"author"`
	PublishedAt time.Time       `json:"publishedAt"`
}

func NewResponse(a *announcement.Announcement) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Priority:    string(a.Priority),
		PublishedAt: a.PublishedAt,
	}
	if a.Author != nil {
		resp.Author = &AuthorResponse{ID: a.Author.ID, FullName: a.Author.FullName}
	}
	return resp
}

type ListAnnouncementsRequest struct {
	request.ListParams
	Keyword  string `form:"keyword" binding:"omitempty,max=100"`
	Priority string `form:"priority" binding:"omitempty,oneof=low normal high"`
}

type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=low normal high"`
}

// PatchAnnouncementRequest is the body of PATCH /announcements/:id.
type PatchAnnouncementRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Content  *string `json:"content"`
	Priority *string `json:"priority" binding:"omitempty,oneof=low normal high"`
}

func (r PatchAnnouncementRequest) toPatch() announcement.Patch {
	p := announcement.Patch{Title: r.Title, Content: r.Content}
	if r.Priority != nil {
		priority := announcement.Priority(*r.Priority)
		p.Priority = &priority
	}
	return p
}
