package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/transaction"
)

type fakeService struct{}

func (fakeService) List(_ context.Context, _ string, limit, offset int) ([]*transaction.Transaction, int, error) {
	return []*transaction.Transaction{{ID: "t1", BillTitle: "Management fee 2024-03", Amount: "1500.00", PaymentMethod: "bank_transfer"}}, 12, nil
}

func (fakeService) ListByMonth(_ context.Context, _ string, month string) ([]*transaction.Transaction, error) {
	if month != "2024-03" {
		return nil, transaction.ErrInvalidMonth
	}
	return nil, nil
}

func TestTransactionRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateAccessToken("user-1", "a@example.com", "resident")
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(fakeService{}), auth.AuthRequired(jwtManager))

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get("/v1/transactions?limit=5")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Items []TransactionResponse `json:"items"`
		Total int                   `json:"total"`
		Limit int                   `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 5, page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1500.00", page.Items[0].Amount)
	assert.Equal(t, "Management fee 2024-03", page.Items[0].BillTitle)

	w = get("/v1/transactions/by-month/2024-03")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"month":"2024-03","items":[]}`, w.Body.String())

	w = get("/v1/transactions/by-month/March")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
