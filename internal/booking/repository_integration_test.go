//go:build integration

package booking_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/condo-backend/internal/booking"
	"github.com/nekogravitycat/condo-backend/internal/db/dbtest"
)

func date(s string) time.Time {
	d, err := booking.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPgxRepositoryRoundTrip(t *testing.T) {
	pool := dbtest.NewPool(t)
	userID := dbtest.CreateUser(t, pool, "resident@example.com")
	svc := booking.NewService(booking.NewPgxRepository(pool), nil, nil)
	ctx := context.Background()

	end := date("2024-03-31")
	monthly, err := svc.Create(ctx, booking.CreateRequest{
		UserID: userID, ServiceType: booking.ServiceParking, SlotNumber: "A1",
		Date: date("2024-03-01"), EndDate: &end, StartTime: 0, EndTime: 23*60 + 59,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, monthly.ID)
	assert.False(t, monthly.CreatedAt.IsZero())

	_, err = svc.Create(ctx, booking.CreateRequest{
		UserID: userID, ServiceType: booking.ServiceParking, SlotNumber: "A1",
		Date: date("2024-03-15"), StartTime: 8 * 60, EndTime: 9 * 60,
	})
	assert.ErrorIs(t, err, booking.ErrSlotTaken)

	single, err := svc.Create(ctx, booking.CreateRequest{
		UserID: userID, ServiceType: booking.ServiceParking, SlotNumber: "A2",
		Date: date("2024-03-15"), StartTime: 8*60 + 30, EndTime: 9 * 60,
	})
	require.NoError(t, err)

	listed, err := svc.ListByDate(ctx, booking.Filter{ServiceType: booking.ServiceParking, Date: date("2024-03-15")})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "A1", listed[0].SlotNumber)
	require.NotNil(t, listed[0].EndDate)
	assert.Equal(t, "2024-03-31", listed[0].EndDate.Format(booking.DateLayout))
	assert.Equal(t, "A2", listed[1].SlotNumber)
	assert.Equal(t, "08:30", listed[1].StartTime.String())

	mine, err := svc.ListMine(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, single.ID, mine[0].ID)
	assert.Equal(t, monthly.ID, mine[1].ID)
}

func TestPgxRepositoryConcurrentCreate(t *testing.T) {
	pool := dbtest.NewPool(t)
	svc := booking.NewService(booking.NewPgxRepository(pool), nil, nil)
	ctx := context.Background()

	const writers = 30
	users := make([]string, writers)
	for i := range users {
		users[i] = dbtest.CreateUser(t, pool, "writer"+string(rune('a'+i))+"@example.com")
	}

	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
		other     atomic.Int32
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := svc.Create(ctx, booking.CreateRequest{
				UserID: userID, ServiceType: booking.ServiceBBQ, SlotNumber: "G1",
				Date: date("2024-06-01"), StartTime: 18 * 60, EndTime: 21 * 60,
			})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, booking.ErrSlotTaken):
				conflicts.Add(1)
			default:
				other.Add(1)
			}
		}(users[i])
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(writers-1), conflicts.Load())
	assert.Zero(t, other.Load())

	var count int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM bookings WHERE service_type = 'bbq' AND slot_number = 'G1' AND status = 'confirmed'`,
	).Scan(&count))
	assert.Equal(t, 1, count)
}
