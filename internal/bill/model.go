package bill

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "bill not found")
	ErrForbidden     = apperror.New(http.StatusForbidden, "you can only view your own bills")
	ErrAlreadyPaid   = apperror.New(http.StatusConflict, "bill is already paid")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "status must be one of pending, paid, overdue, all")
	ErrMethodMissing = apperror.New(http.StatusBadRequest, "payment method is required")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// StatusAll disables status filtering when listing.
const StatusAll = "all"

// DateLayout is the wire format of period and due dates.
const DateLayout = "2006-01-02"

type FeeType struct {
	ID          string
	Name        string
	Description *string
}

// ApartmentInfo is the unit a bill was issued to.
type ApartmentInfo struct {
	UnitNumber  string
	FloorNumber *int32
	BlockName   *string
}

type Bill struct {
	ID          string
	ApartmentID string
	FeeType     *FeeType
	Apartment   *ApartmentInfo
	Title       string
	Amount      string // decimal
	Period      time.Time
	DueDate     time.Time
	Status      Status
	CreatedAt   time.Time
	PaidAt      *time.Time
}

// Filter selects bills of one apartment.
type Filter struct {
	ApartmentID string
	Status      string // empty or StatusAll matches every status
	Limit       int
	Offset      int
}

// PaymentRequest is what a resident submits when settling a bill.
type PaymentRequest struct {
	Method         string
	TransactionRef *string
	Notes          *string
}

// Receipt is the outcome of a successful payment.
type Receipt struct {
	BillID        string
	Status        Status
	PaidAt        time.Time
	TransactionID string
	Amount        string
	Method        string
}
