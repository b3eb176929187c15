package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/condo-backend/internal/db"
)

type Repository interface {
	List(ctx context.Context, userID string, limit, offset int) ([]*Notification, error)
	// Count returns the number of the user's notifications and how many are unread.
	Count(ctx context.Context, userID string) (total, unread int, err error)
	// MarkRead flags the notification as read if it belongs to the user.
	MarkRead(ctx context.Context, id, userID string) (*Notification, error)
}

var columns = []string{"id", "user_id", "title", "content", "type", "is_read", "related_bill_id", "created_at"}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// Insert writes n through q, which may be a pool or an open transaction.
func Insert(ctx context.Context, q db.Querier, n *Notification) error {
	if n.Type == "" {
		n.Type = TypeReminder
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.notifications").
		Columns("user_id", "title", "content", "type", "related_bill_id").
		Values(n.UserID, n.Title, n.Content, n.Type, n.RelatedBillID).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert notification query failed: %w", err)
	}

	if err := q.QueryRow(ctx, query, args...).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return fmt.Errorf("insert notification failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, userID string, limit, offset int) ([]*Notification, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(columns...).
		From("public.notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications failed: %w", err)
	}
	defer rows.Close()

	var result []*Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification failed: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications failed: %w", err)
	}
	return result, nil
}

func (r *pgxRepository) Count(ctx context.Context, userID string) (int, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)", "count(*) FILTER (WHERE NOT is_read)").
		From("public.notifications").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build count notifications query failed: %w", err)
	}

	var total, unread int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total, &unread); err != nil {
		return 0, 0, fmt.Errorf("count notifications failed: %w", err)
	}
	return total, unread, nil
}

func (r *pgxRepository) MarkRead(ctx context.Context, id, userID string) (*Notification, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING id, user_id, title, content, type, is_read, related_bill_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build mark notification read query failed: %w", err)
	}

	n, err := scanNotification(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		// Someone else's notification is reported the same as a missing one.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mark notification read failed: %w", err)
	}
	return n, nil
}

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Type, &n.IsRead, &n.RelatedBillID, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
