package http

import (
	"time"

	"github.com/nekogravitycat/condo-backend/internal/booking"
)

// CreateBookingRequest is the body of POST /v1/bookings.
type CreateBookingRequest struct {
	ServiceType string  `json:"serviceType" binding:"required,oneof=parking bbq"`
	SlotNumber  string  `json:"slotNumber" binding:"required,max=50"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	StartTime   string  `json:"startTime" binding:"required,clock"`
	EndTime     string  `json:"endTime" binding:"required,clock"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

// ToCreateRequest parses the wire formats into a service request.
func (r *CreateBookingRequest) ToCreateRequest(userID string) (booking.CreateRequest, error) {
	req := booking.CreateRequest{
		UserID:      userID,
		ServiceType: booking.ServiceType(r.ServiceType),
		SlotNumber:  r.SlotNumber,
		Notes:       r.Notes,
	}

	var err error
	if req.Date, err = booking.ParseDate(r.Date); err != nil {
		return req, booking.ErrInvalidInput
	}
	if r.EndDate != nil {
		end, err := booking.ParseDate(*r.EndDate)
		if err != nil {
			return req, booking.ErrInvalidInput
		}
		req.EndDate = &end
	}
	if req.StartTime, err = booking.ParseClock(r.StartTime); err != nil {
		return req, booking.ErrInvalidInput
	}
	if req.EndTime, err = booking.ParseClock(r.EndTime); err != nil {
		return req, booking.ErrInvalidInput
	}
	return req, nil
}

// ListBookingsRequest defines query parameters for GET /v1/bookings.
type ListBookingsRequest struct {
	Date        string `form:"date" binding:"required,datetime=2006-01-02"`
	ServiceType string `form:"serviceType" binding:"required,oneof=parking bbq"`
	SlotNumber  string `form:"slotNumber" binding:"omitempty,max=50"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ServiceType string    `json:"serviceType"`
	SlotNumber  string    `json:"slotNumber"`
	Date        string    `json:"date"`
	EndDate     *string   `json:"endDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		ServiceType: string(b.ServiceType),
		SlotNumber:  b.SlotNumber,
		Date:        b.Date.Format(booking.DateLayout),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}
	if b.EndDate != nil {
		end := b.EndDate.Format(booking.DateLayout)
		resp.EndDate = &end
	}
	return resp
}

func newBookingList(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}
