package bill

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/condo-backend/internal/apartment"
	"github.com/nekogravitycat/condo-backend/internal/pkg/metrics"
)

type apartmentsStub map[string]string

func (a apartmentsStub) GetMine(_ context.Context, userID string) (*apartment.Apartment, error) {
	id, ok := a[userID]
	if !ok {
		return nil, apartment.ErrNotFound
	}
	return &apartment.Apartment{ID: id}, nil
}

type memoryRepository struct {
	mu       sync.Mutex
	bills    map[string]*Bill
	payments int
}

func newMemoryRepository(bills ...*Bill) *memoryRepository {
	r := &memoryRepository{bills: map[string]*Bill{}}
	for _, b := range bills {
		r.bills[b.ID] = b
	}
	return r
}

func (r *memoryRepository) matching(keep func(*Bill) bool) []*Bill {
	var out []*Bill
	for _, b := range r.bills {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}

func (r *memoryRepository) List(_ context.Context, f Filter) ([]*Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(func(b *Bill) bool { return filterMatches(b, f) })
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	if f.Offset >= len(out) {
		return nil, nil
	}
	return out[f.Offset:min(f.Offset+f.Limit, len(out))], nil
}

func (r *memoryRepository) Count(_ context.Context, f Filter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matching(func(b *Bill) bool { return filterMatches(b, f) })), nil
}

func filterMatches(b *Bill, f Filter) bool {
	return b.ApartmentID == f.ApartmentID && (f.Status == "" || f.Status == StatusAll || string(b.Status) == f.Status)
}

func (r *memoryRepository) ListDue(_ context.Context, apartmentID string, from, to time.Time) ([]*Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(func(b *Bill) bool {
		return b.ApartmentID == apartmentID && b.Status == StatusPending &&
			!b.DueDate.Before(from) && !b.DueDate.After(to)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepository) MarkPaid(_ context.Context, billID, _ string, req PaymentRequest) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bills[billID]
	if b.Status == StatusPaid {
		return nil, ErrAlreadyPaid
	}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	b.Status, b.PaidAt = StatusPaid, &now
	r.payments++
	return &Receipt{BillID: b.ID, Status: b.Status, PaidAt: now, TransactionID: "tx-1", Amount: b.Amount, Method: req.Method}, nil
}

func day(s string) time.Time {
	d, _ := time.Parse(DateLayout, s)
	return d
}

func fixture() (*memoryRepository, apartmentsStub) {
	repo := newMemoryRepository(
		&Bill{ID: "b1", ApartmentID: "apt-1", Title: "Management fee Feb", Amount: "1500.00", DueDate: day("2024-02-28"), Status: StatusPaid},
		&Bill{ID: "b2", ApartmentID: "apt-1", Title: "Management fee Mar", Amount: "1500.00", DueDate: day("2024-03-12"), Status: StatusPending},
		&Bill{ID: "b3", ApartmentID: "apt-1", Title: "Water Mar", Amount: "320.50", DueDate: day("2024-03-20"), Status: StatusPending},
		&Bill{ID: "b4", ApartmentID: "apt-1", Title: "Parking Jan", Amount: "800.00", DueDate: day("2024-01-31"), Status: StatusOverdue},
		&Bill{ID: "b9", ApartmentID: "apt-2", Title: "Neighbour", Amount: "1.00", DueDate: day("2024-03-11"), Status: StatusPending},
	)
	return repo, apartmentsStub{"u1": "apt-1", "u2": "apt-2"}
}

func fixedNow() time.Time { return time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC) }

func TestListFiltersByStatusAndApartment(t *testing.T) {
	repo, apts := fixture()
	svc := NewService(repo, apts, Options{})
	ctx := context.Background()

	bills, total, err := svc.List(ctx, "u1", Filter{Status: StatusAll, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, bills, 4)
	assert.Equal(t, "b3", bills[0].ID, "latest due date first")

	bills, total, err = svc.List(ctx, "u1", Filter{Status: "pending", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, bills, 1)

	_, _, err = svc.List(ctx, "u1", Filter{Status: "cancelled", Limit: 50})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListWithoutApartmentIsEmpty(t *testing.T) {
	repo, apts := fixture()
	svc := NewService(repo, apts, Options{})

	bills, total, err := svc.List(context.Background(), "nobody", Filter{Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, bills)
	assert.Zero(t, total)
}

func TestUpcomingWindow(t *testing.T) {
	repo, apts := fixture()
	svc := NewService(repo, apts, Options{UpcomingWindow: 7 * 24 * time.Hour, Now: fixedNow})

	bills, err := svc.Upcoming(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "b2", bills[0].ID)

	svc = NewService(repo, apts, Options{UpcomingWindow: 14 * 24 * time.Hour, Now: fixedNow})
	bills, err = svc.Upcoming(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "b2", bills[0].ID)
	assert.Equal(t, "b3", bills[1].ID)
}

func TestGetChecksOwnership(t *testing.T) {
	repo, apts := fixture()
	svc := NewService(repo, apts, Options{})
	ctx := context.Background()

	b, err := svc.Get(ctx, "u1", "b2")
	require.NoError(t, err)
	assert.Equal(t, "Management fee Mar", b.Title)

	_, err = svc.Get(ctx, "u1", "b9")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "nobody", "b2")
	assert.ErrorIs(t, err, apartment.ErrNotFound)
}

func TestMarkPaid(t *testing.T) {
	repo, apts := fixture()
	m := metrics.New(prometheus.NewRegistry())
	svc := NewService(repo, apts, Options{Metrics: m})
	ctx := context.Background()

	receipt, err := svc.MarkPaid(ctx, "u1", "b2", PaymentRequest{Method: " bank_transfer "})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, receipt.Status)
	assert.Equal(t, "1500.00", receipt.Amount)
	assert.Equal(t, "bank_transfer", receipt.Method)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BillsPaid))

	_, err = svc.MarkPaid(ctx, "u1", "b2", PaymentRequest{Method: "cash"})
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = svc.MarkPaid(ctx, "u1", "b9", PaymentRequest{Method: "cash"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.MarkPaid(ctx, "u1", "b3", PaymentRequest{Method: "  "})
	assert.ErrorIs(t, err, ErrMethodMissing)

	assert.Equal(t, 1, repo.payments)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BillsPaid))
}
