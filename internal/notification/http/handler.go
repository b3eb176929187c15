package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/notification"
	"github.com/nekogravitycat/condo-backend/internal/pkg/request"
	"github.com/nekogravitycat/condo-backend/internal/pkg/response"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

// GET /v1/notifications
func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	params.Normalize()

	page, err := h.service.List(c.Request.Context(), auth.GetUserID(c), params.Limit, params.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]NotificationResponse, len(page.Items))
	for i, n := range page.Items {
		items[i] = NewNotificationResponse(n)
	}

	c.JSON(http.StatusOK, ListResponse{
		PageResponse: response.NewPageResponse(items, page.Total, params.Limit, params.Offset),
		Unread:       page.Unread,
	})
}

// PATCH /v1/notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	n, err := h.service.MarkRead(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, MarkReadResponse{
		Message:      "Notification marked as read",
		Notification: NewNotificationResponse(n),
	})
}
