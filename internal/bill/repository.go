package bill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/condo-backend/internal/notification"
	"github.com/nekogravitycat/condo-backend/internal/transaction"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Bill, error)
	Count(ctx context.Context, filter Filter) (int, error)
	// ListDue returns pending bills of the apartment due within [from, to], soonest first.
	ListDue(ctx context.Context, apartmentID string, from, to time.Time) ([]*Bill, error)
	GetByID(ctx context.Context, id string) (*Bill, error)
	// MarkPaid settles the bill, records the payment and notifies the payer atomically.
	MarkPaid(ctx context.Context, billID, userID string, req PaymentRequest) (*Receipt, error)
}

var billColumns = []string{
	"b.id", "b.apartment_id", "b.title", "b.amount::text", "b.period", "b.due_date",
	"b.status", "b.created_at", "b.paid_at",
	"f.id", "f.name", "f.description",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func selectBills(columns ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(columns...).
		From("public.bills b").
		LeftJoin("public.fee_types f ON f.id = b.fee_type_id")
}

func applyFilter(q squirrel.SelectBuilder, filter Filter) squirrel.SelectBuilder {
	q = q.Where(squirrel.Eq{"b.apartment_id": filter.ApartmentID})
	if filter.Status != "" && filter.Status != StatusAll {
		q = q.Where(squirrel.Eq{"b.status": filter.Status})
	}
	return q
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Bill, error) {
	query := applyFilter(selectBills(billColumns...), filter).
		OrderBy("b.due_date DESC", "b.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	return r.list(ctx, query, "list bills")
}

func (r *pgxRepository) Count(ctx context.Context, filter Filter) (int, error) {
	query, args, err := applyFilter(selectBills("count(*)"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bills query failed: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count bills failed: %w", err)
	}
	return total, nil
}

func (r *pgxRepository) ListDue(ctx context.Context, apartmentID string, from, to time.Time) ([]*Bill, error) {
	query := selectBills(billColumns...).
		Where(squirrel.Eq{"b.apartment_id": apartmentID, "b.status": StatusPending}).
		Where(squirrel.GtOrEq{"b.due_date": from}).
		Where(squirrel.LtOrEq{"b.due_date": to}).
		OrderBy("b.due_date ASC", "b.id ASC")

	return r.list(ctx, query, "list upcoming bills")
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Bill, error) {
	query, args, err := selectBills(append(billColumns, "a.unit_number", "a.floor_number", "a.block_name")...).
		LeftJoin("public.apartments a ON a.id = b.apartment_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get bill query failed: %w", err)
	}

	var (
		unit *string
		apt  ApartmentInfo
	)
	b, err := scanBill(r.pool.QueryRow(ctx, query, args...), &unit, &apt.FloorNumber, &apt.BlockName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get bill failed: %w", err)
	}
	if unit != nil {
		apt.UnitNumber = *unit
		b.Apartment = &apt
	}
	return b, nil
}

func (r *pgxRepository) MarkPaid(ctx context.Context, billID, userID string, req PaymentRequest) (*Receipt, error) {
	var receipt Receipt

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var title string
		// The status guard makes a concurrent second payment a no-op.
		err := tx.QueryRow(ctx, `
			UPDATE public.bills
			SET status = $2, paid_at = now()
			WHERE id = $1 AND status <> $2
			RETURNING id, status, paid_at, title
		`, billID, StatusPaid).Scan(&receipt.BillID, &receipt.Status, &receipt.PaidAt, &title)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrAlreadyPaid
			}
			return fmt.Errorf("mark bill paid failed: %w", err)
		}

		payment := &transaction.Transaction{
			BillID:         billID,
			UserID:         userID,
			PaymentMethod:  req.Method,
			TransactionRef: req.TransactionRef,
			Notes:          req.Notes,
		}
		if err := transaction.RecordPayment(ctx, tx, payment); err != nil {
			return err
		}
		receipt.TransactionID = payment.ID
		receipt.Amount = payment.Amount
		receipt.Method = payment.PaymentMethod

		bill := billID
		return notification.Insert(ctx, tx, &notification.Notification{
			UserID:        userID,
			Title:         "Payment received",
			Content:       fmt.Sprintf("We received your payment of %s for %q.", payment.Amount, title),
			Type:          notification.TypePayment,
			RelatedBillID: &bill,
		})
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *pgxRepository) list(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*Bill, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query failed: %w", op, err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill failed: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	return bills, nil
}

// scanBill reads billColumns followed by any extra destinations.
func scanBill(row pgx.Row, extra ...any) (*Bill, error) {
	var (
		b              Bill
		feeID, feeName *string
		feeDescription *string
	)
	dest := []any{
		&b.ID, &b.ApartmentID, &b.Title, &b.Amount, &b.Period, &b.DueDate,
		&b.Status, &b.CreatedAt, &b.PaidAt,
		&feeID, &feeName, &feeDescription,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if feeID != nil {
		b.FeeType = &FeeType{ID: *feeID, Description: feeDescription}
		if feeName != nil {
			b.FeeType.Name = *feeName
		}
	}
	return &b, nil
}
