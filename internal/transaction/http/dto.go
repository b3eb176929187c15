package http

import (
	"time"

	"github.com/nekogravitycat/condo-backend/internal/transaction"
)

type TransactionResponse struct {
	ID             string    `json:"id"`
	BillID         string    `json:"billId"`
	BillTitle      string    `json:"billTitle"`
	Amount         string    `json:"amount"`
	PaymentDate    time.Time `json:"paymentDate"`
	PaymentMethod  string    `json:"paymentMethod"`
	TransactionRef *string   `json:"transactionRef"`
	Notes          *string   `json:"notes"`
}

func NewTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		BillID:         t.BillID,
		BillTitle:      t.BillTitle,
		Amount:         t.Amount,
		PaymentDate:    t.PaymentDate,
		PaymentMethod:  t.PaymentMethod,
		TransactionRef: t.TransactionRef,
		Notes:          t.Notes,
	}
}

func newTransactionList(list []*transaction.Transaction) []TransactionResponse {
	items := make([]TransactionResponse, len(list))
	for i, t := range list {
		items[i] = NewTransactionResponse(t)
	}
	return items
}

type ByMonthRequest struct {
	Month string `uri:"month" binding:"required"`
}

type ByMonthResponse struct {
	Month string                `json:"month"`
	Items []TransactionResponse `json:"items"`
}
