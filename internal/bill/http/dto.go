package http

import (
	"time"

	"github.com/nekogravitycat/condo-backend/internal/bill"
	"github.com/nekogravitycat/condo-backend/internal/pkg/request"
)

type ListBillsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=pending paid overdue all"`
}

type MarkPaidRequest struct {
	PaymentMethod  string  `json:"paymentMethod" binding:"required,max=50"`
	TransactionRef *string `json:"transactionRef" binding:"omitempty,max=100"`
	Notes          *string `json:"notes" binding:"omitempty,max=1000"`
}

type FeeTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type ApartmentResponse struct {
	UnitNumber string  `json:"unitNumber"`
	Floor      *int32  `json:"floor"`
	Block      *string `json:"block"`
}

type BillResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Amount    string             `json:"amount"`
	Period    string             `json:"period"`
	DueDate   string             `json:"dueDate"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	PaidAt    *time.Time         `json:"paidAt"`
	FeeType   *FeeTypeResponse   `json:"feeType"`
	Apartment *ApartmentResponse `json:"apartment,omitempty"`
}

func NewBillResponse(b *bill.Bill) BillResponse {
	resp := BillResponse{
		ID:        b.ID,
		Title:     b.Title,
		Amount:    b.Amount,
		Period:    b.Period.Format(bill.DateLayout),
		DueDate:   b.DueDate.Format(bill.DateLayout),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		PaidAt:    b.PaidAt,
	}
	if b.FeeType != nil {
		resp.FeeType = &FeeTypeResponse{ID: b.FeeType.ID, Name: b.FeeType.Name, Description: b.FeeType.Description}
	}
	if b.Apartment != nil {
		resp.Apartment = &ApartmentResponse{
			UnitNumber: b.Apartment.UnitNumber,
			Floor:      b.Apartment.FloorNumber,
			Block:      b.Apartment.BlockName,
		}
	}
	return resp
}

func newBillList(bills []*bill.Bill) []BillResponse {
	items := make([]BillResponse, len(bills))
	for i, b := range bills {
		items[i] = NewBillResponse(b)
	}
	return items
}

type UpcomingResponse struct {
	Items []BillResponse `json:"items"`
}

type PaidBill struct {
	ID     string    `json:"id"`
	Status string    `json:"status"`
	PaidAt time.Time `json:"paidAt"`
}

type PaymentSummary struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
	Method string `json:"method"`
}

type MarkPaidResponse struct {
	Message     string         `json:"message"`
	Bill        PaidBill       `json:"bill"`
	Transaction PaymentSummary `json:"transaction"`
}

func NewMarkPaidResponse(r *bill.Receipt) MarkPaidResponse {
	return MarkPaidResponse{
		Message:     "Bill marked as paid",
		Bill:        PaidBill{ID: r.BillID, Status: string(r.Status), PaidAt: r.PaidAt},
		Transaction: PaymentSummary{ID: r.TransactionID, Amount: r.Amount, Method: r.Method},
	}
}
