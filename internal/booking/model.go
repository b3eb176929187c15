package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotTaken          = apperror.New(http.StatusConflict, "slot already booked")
	ErrInvalidTimeRange   = apperror.New(http.StatusBadRequest, "end time must be after start time")
	ErrInvalidDateRange   = apperror.New(http.StatusBadRequest, "end date must not be before date")
	ErrInvalidServiceType = apperror.New(http.StatusBadRequest, "invalid service type")
	ErrSlotRequired       = apperror.New(http.StatusBadRequest, "slot number is required")
	ErrInvalidInput       = apperror.New(http.StatusBadRequest, "invalid input parameters")
)

// DateLayout is the wire and storage format of booking dates.
const DateLayout = "2006-01-02"

// ServiceType is the category of bookable resource.
type ServiceType string

const (
	ServiceParking ServiceType = "parking"
	ServiceBBQ     ServiceType = "bbq"
)

func (t ServiceType) Valid() bool {
	return t == ServiceParking || t == ServiceBBQ
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// Booking is a reservation of one slot of a service.
// A booking with EndDate set is a range ("monthly") booking and blocks whole days.
type Booking struct {
	ID          string
	UserID      string
	ServiceType ServiceType
	SlotNumber  string
	Date        time.Time
	EndDate     *time.Time
	StartTime   Clock
	EndTime     Clock
	Status      Status
	Notes       *string
	CreatedAt   time.Time
}

// Window returns the span the booking occupies.
func (b *Booking) Window() Window {
	return Window{
		Date:    b.Date,
		EndDate: b.EndDate,
		Start:   b.StartTime,
		End:     b.EndTime,
	}
}

// Filter selects confirmed bookings of a service that cover a day.
type Filter struct {
	ServiceType ServiceType
	SlotNumber  string // optional
	Date        time.Time
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
