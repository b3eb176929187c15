package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/condo-backend/internal/announcement"
	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/pkg/request"
	"github.com/nekogravitycat/condo-backend/internal/pkg/response"
)

type Handler struct {
	service announcement.Service
}

func NewHandler(service announcement.Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /announcements.
func (h *Handler) List(c *gin.Context) {
	var req ListAnnouncementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	list, total, err := h.service.List(c.Request.Context(), announcement.Filter{
		Keyword:  req.Keyword,
		Priority: announcement.Priority(req.Priority),
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AnnouncementResponse, len(list))
	for i, a := range list {
		items[i] = NewResponse(a)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, total, req.Limit, req.Offset))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid announcement id", err)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponse(a))
}

// Create posts a notice authored by the calling admin.
func (h *Handler) Create(c *gin.Context) {
	var body CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), announcement.CreateRequest{
		Title:    body.Title,
		Content:  body.Content,
		Priority: announcement.Priority(body.Priority),
		AuthorID: auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid announcement id", err)
		return
	}

	var body PatchAnnouncementRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	a, err := h.service.Update(c.Request.Context(), uri.ID, body.toPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponse(a))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid announcement id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
