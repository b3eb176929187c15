package notification

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "notification not found")

const (
	TypeReminder = "reminder"
	TypePayment  = "payment"
)

type Notification struct {
	ID            string
	UserID        string
	Title         string
	Content       string
	Type          string
	IsRead        bool
	RelatedBillID *string
	CreatedAt     time.Time
}

// Page is one page of a user's notifications plus inbox-wide counters.
type Page struct {
	Items  []*Notification
	Total  int
	Unread int
}
