package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/condo-backend/internal/apartment"
	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/pkg/response"
)

type Handler struct {
	service apartment.Service
}

func NewHandler(service apartment.Service) *Handler {
	return &Handler{service: service}
}

// GET /v1/apartments/my
func (h *Handler) GetMine(c *gin.Context) {
	a, err := h.service.GetMine(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewApartmentResponse(a))
}
