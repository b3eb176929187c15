package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/condo-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	ListConfirmed(ctx context.Context, filter Filter) ([]*Booking, error)

	// ListConfirmedBySlot returns every confirmed booking of the slot, regardless of date.
	ListConfirmedBySlot(ctx context.Context, serviceType ServiceType, slotNumber string) ([]*Booking, error)

	// WithSlotLock runs fn in a transaction that holds an exclusive lock on
	// (serviceType, slotNumber) until it commits. The Repository passed to fn
	// is bound to that transaction.
	WithSlotLock(ctx context.Context, serviceType ServiceType, slotNumber string, fn func(repo Repository) error) error
}

var bookingColumns = []string{
	"id", "user_id", "service_type", "slot_number", "date", "end_date",
	"start_time", "end_time", "status", "notes", "created_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
	db   db.Querier
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool, db: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "service_type", "slot_number", "date", "end_date", "start_time", "end_time", "status", "notes").
		Values(b.UserID, b.ServiceType, b.SlotNumber, b.Date, b.EndDate,
			toPgTime(b.StartTime), toPgTime(b.EndTime), b.Status, b.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	return r.list(ctx, query, "list user bookings")
}

func (r *pgxRepository) ListConfirmed(ctx context.Context, filter Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"service_type": filter.ServiceType, "status": StatusConfirmed}).
		// Day containment: date <= d <= COALESCE(end_date, date)
		Where(squirrel.LtOrEq{"date": filter.Date}).
		Where(squirrel.Expr("COALESCE(end_date, date) >= ?", filter.Date)).
		OrderBy("slot_number ASC", "date ASC", "start_time ASC")

	if filter.SlotNumber != "" {
		query = query.Where(squirrel.Eq{"slot_number": filter.SlotNumber})
	}

	return r.list(ctx, query, "list confirmed bookings")
}

func (r *pgxRepository) ListConfirmedBySlot(ctx context.Context, serviceType ServiceType, slotNumber string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{
			"service_type": serviceType,
			"slot_number":  slotNumber,
			"status":       StatusConfirmed,
		})

	return r.list(ctx, query, "list slot bookings")
}

func (r *pgxRepository) WithSlotLock(ctx context.Context, serviceType ServiceType, slotNumber string, fn func(repo Repository) error) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		// Transaction-scoped advisory lock; released on commit or rollback.
		key := string(serviceType) + ":" + slotNumber
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
			return fmt.Errorf("lock booking slot failed: %w", err)
		}
		return fn(&pgxRepository{pool: r.pool, db: tx})
	})
}

func (r *pgxRepository) list(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*Booking, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query failed: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}

	return bookings, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b          Booking
		start, end pgtype.Time
	)
	if err := row.Scan(
		&b.ID, &b.UserID, &b.ServiceType, &b.SlotNumber, &b.Date, &b.EndDate,
		&start, &end, &b.Status, &b.Notes, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.StartTime = fromPgTime(start)
	b.EndTime = fromPgTime(end)
	return &b, nil
}

func toPgTime(c Clock) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c) * int64(time.Minute/time.Microsecond), Valid: true}
}

func fromPgTime(t pgtype.Time) Clock {
	return Clock(t.Microseconds / int64(time.Minute/time.Microsecond))
}
