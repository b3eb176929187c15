package transaction

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/pkg/apperror"
)

var ErrInvalidMonth = apperror.New(http.StatusBadRequest, "month must be in YYYY-MM format")

// MonthLayout is the format of the by-month path parameter.
const MonthLayout = "2006-01"

// Transaction is a payment made against a bill.
type Transaction struct {
	ID             string
	BillID         string
	BillTitle      string
	UserID         string
	Amount         string // decimal
	PaymentDate    time.Time
	PaymentMethod  string
	TransactionRef *string
	Notes          *string
}

// Scope selects the payments a resident may see: their own, for bills of their apartment.
type Scope struct {
	UserID      string
	ApartmentID string
}
