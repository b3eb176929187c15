package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/bill"
	"github.com/nekogravitycat/condo-backend/internal/pkg/request"
	"github.com/nekogravitycat/condo-backend/internal/pkg/response"
)

type Handler struct {
	service bill.Service
}

func NewHandler(service bill.Service) *Handler {
	return &Handler{service: service}
}

// GET /v1/bills
func (h *Handler) List(c *gin.Context) {
	var req ListBillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	filter := bill.Filter{
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	bills, total, err := h.service.List(c.Request.Context(), auth.GetUserID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newBillList(bills), total, req.Limit, req.Offset))
}

// GET /v1/bills/upcoming
func (h *Handler) Upcoming(c *gin.Context) {
	bills, err := h.service.Upcoming(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, UpcomingResponse{Items: newBillList(bills)})
}

// GET /v1/bills/:id
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	b, err := h.service.Get(c.Request.Context(), auth.GetUserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBillResponse(b))
}

// PATCH /v1/bills/:id/mark-paid
func (h *Handler) MarkPaid(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body MarkPaidRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	receipt, err := h.service.MarkPaid(c.Request.Context(), auth.GetUserID(c), uri.ID, bill.PaymentRequest{
		Method:         body.PaymentMethod,
		TransactionRef: body.TransactionRef,
		Notes:          body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewMarkPaidResponse(receipt))
}
