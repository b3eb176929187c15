package http

import (
	"time"

	"github.com/nekogravitycat/condo-backend/internal/apartment"
)

type OwnerResponse struct {
	ID       string  `json:"id"`
	FullName *string `json:"fullName"`
	Email    string  `json:"email"`
}

type ApartmentResponse struct {
	ID         string         `json:"id"`
	UnitNumber string         `json:"unitNumber"`
	Floor      *int32         `json:"floor"`
	Block      *string        `json:"block"`
	AreaSqm    *string        `json:"areaSqm"`
	Owner      *OwnerResponse `json:"owner"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func NewApartmentResponse(a *apartment.Apartment) ApartmentResponse {
	resp := ApartmentResponse{
		ID:         a.ID,
		UnitNumber: a.UnitNumber,
		Floor:      a.FloorNumber,
		Block:      a.BlockName,
		AreaSqm:    a.AreaSqm,
		CreatedAt:  a.CreatedAt,
	}
	if a.Owner != nil {
		resp.Owner = &OwnerResponse{ID: a.Owner.ID, FullName: a.Owner.FullName, Email: a.Owner.Email}
	}
	return resp
}
