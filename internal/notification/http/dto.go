package http

import (
	"time"

	"github.com/nekogravitycat/condo-backend/internal/notification"
	"github.com/nekogravitycat/condo-backend/internal/pkg/response"
)

type NotificationResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Type          string    `json:"type"`
	IsRead        bool      `json:"isRead"`
	RelatedBillID *string   `json:"relatedBillId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		Title:         n.Title,
		Content:       n.Content,
		Type:          n.Type,
		IsRead:        n.IsRead,
		RelatedBillID: n.RelatedBillID,
		CreatedAt:     n.CreatedAt,
	}
}

// ListResponse is a page of notifications with the inbox unread count.
type ListResponse struct {
	response.PageResponse[NotificationResponse]
	Unread int `json:"unread"`
}

type MarkReadResponse struct {
	Message      string               `json:"message"`
	Notification NotificationResponse `json:"notification"`
}
