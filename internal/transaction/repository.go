package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/condo-backend/internal/db"
)

type Repository interface {
	List(ctx context.Context, scope Scope, limit, offset int) ([]*Transaction, error)
	Count(ctx context.Context, scope Scope) (int, error)
	// ListBetween returns payments with from <= payment_date < to, newest first.
	ListBetween(ctx context.Context, scope Scope, from, to time.Time) ([]*Transaction, error)
}

var columns = []string{
	"t.id", "t.bill_id", "b.title", "t.user_id", "t.paid_amount::text",
	"t.payment_date", "t.payment_method", "t.transaction_ref", "t.notes",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// RecordPayment inserts a payment of the bill's full amount through q and
// fills in the generated fields of t.
func RecordPayment(ctx context.Context, q db.Querier, t *Transaction) error {
	const query = `
		INSERT INTO public.transactions (bill_id, user_id, paid_amount, payment_method, transaction_ref, notes)
		SELECT b.id, $2, b.amount, $3, $4, $5
		FROM public.bills b
		WHERE b.id = $1
		RETURNING id, paid_amount::text, payment_date
	`

	if err := q.QueryRow(ctx, query, t.BillID, t.UserID, t.PaymentMethod, t.TransactionRef, t.Notes).
		Scan(&t.ID, &t.Amount, &t.PaymentDate); err != nil {
		return fmt.Errorf("record payment failed: %w", err)
	}
	return nil
}

func scoped(scope Scope) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select().
		From("public.transactions t").
		Join("public.bills b ON b.id = t.bill_id").
		Where(squirrel.Eq{"b.apartment_id": scope.ApartmentID, "t.user_id": scope.UserID})
}

func (r *pgxRepository) List(ctx context.Context, scope Scope, limit, offset int) ([]*Transaction, error) {
	query := scoped(scope).
		Columns(columns...).
		OrderBy("t.payment_date DESC", "t.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return r.list(ctx, query, "list transactions")
}

func (r *pgxRepository) Count(ctx context.Context, scope Scope) (int, error) {
	query, args, err := scoped(scope).Columns("count(*)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count transactions query failed: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count transactions failed: %w", err)
	}
	return total, nil
}

func (r *pgxRepository) ListBetween(ctx context.Context, scope Scope, from, to time.Time) ([]*Transaction, error) {
	query := scoped(scope).
		Columns(columns...).
		Where(squirrel.GtOrEq{"t.payment_date": from}).
		Where(squirrel.Lt{"t.payment_date": to}).
		OrderBy("t.payment_date DESC", "t.id DESC")

	return r.list(ctx, query, "list transactions by month")
}

func (r *pgxRepository) list(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*Transaction, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query failed: %w", op, err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Transaction, error) {
		var t Transaction
		err := row.Scan(&t.ID, &t.BillID, &t.BillTitle, &t.UserID, &t.Amount,
			&t.PaymentDate, &t.PaymentMethod, &t.TransactionRef, &t.Notes)
		return &t, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	return result, nil
}
