package apartment

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "apartment not found")

// Owner is the brief user record shown with an apartment.
type Owner struct {
	ID       string
	FullName *string
	Email    string
}

type Apartment struct {
	ID          string
	UnitNumber  string
	FloorNumber *int32
	BlockName   *string
	AreaSqm     *string // decimal, kept as text to avoid rounding
	Owner       *Owner
	CreatedAt   time.Time
}
