package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/pkg/request"
	"github.com/nekogravitycat/condo-backend/internal/pkg/response"
	"github.com/nekogravitycat/condo-backend/internal/transaction"
)

type Handler struct {
	service transaction.Service
}

func NewHandler(service transaction.Service) *Handler {
	return &Handler{service: service}
}

// GET /v1/transactions
func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	params.Normalize()

	list, total, err := h.service.List(c.Request.Context(), auth.GetUserID(c), params.Limit, params.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newTransactionList(list), total, params.Limit, params.Offset))
}

// GET /v1/transactions/by-month/:month
func (h *Handler) ListByMonth(c *gin.Context) {
	var uri ByMonthRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	list, err := h.service.ListByMonth(c.Request.Context(), auth.GetUserID(c), uri.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ByMonthResponse{Month: uri.Month, Items: newTransactionList(list)})
}
