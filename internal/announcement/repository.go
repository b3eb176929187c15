package announcement

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, d Draft) (*Announcement, error)
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, filter Filter) ([]*Announcement, int, error)
	Update(ctx context.Context, id string, p Patch) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{"a.id", "a.title", "a.content", "a.priority", "a.published_at", "u.id", "u.full_name"}

// selectFrom reads announcements from src (a table or CTE name aliased as a)
// together with the author's name.
func selectFrom(src string, extra ...string) squirrel.SelectBuilder {
	return psql.Select(append(columns, extra...)...).
		From(src + " a").
		LeftJoin("public.users u ON u.id = a.author_id")
}

// withCTE runs a write statement as a CTE so the written row comes back
// joined with its author in one round trip.
func withCTE(name string, write squirrel.Sqlizer) (string, []any, error) {
	inner, args, err := write.ToSql()
	if err != nil {
		return "", nil, err
	}
	return selectFrom(name).
		Prefix("WITH "+name+" AS ("+inner+")", args...).
		ToSql()
}

func (r *pgxRepository) Create(ctx context.Context, d Draft) (*Announcement, error) {
	insert := squirrel.Insert("public.announcements").
		Columns("title", "content", "priority", "author_id").
		Values(d.Title, d.Content, d.Priority, d.AuthorID).
		Suffix("RETURNING *")

	query, args, err := withCTE("inserted", insert)
	if err != nil {
		return nil, fmt.Errorf("build create announcement query failed: %w", err)
	}

	a, err := scanAnnouncement(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("create announcement failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Announcement, error) {
	query, args, err := selectFrom("public.announcements").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get announcement query failed: %w", err)
	}

	a, err := scanAnnouncement(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get announcement failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	query := selectFrom("public.announcements", "count(*) OVER() AS total_count")

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"a.title": pattern},
			squirrel.ILike{"a.content": pattern},
		})
	}
	if filter.Priority != "" {
		query = query.Where(squirrel.Eq{"a.priority": filter.Priority})
	}

	// High priority first, then newest.
	query = query.OrderBy(
		"CASE a.priority WHEN 'high' THEN 0 WHEN 'normal' THEN 1 ELSE 2 END",
		"a.published_at DESC",
		"a.id DESC",
	).Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list announcement query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements failed: %w", err)
	}
	defer rows.Close()

	var (
		result []*Announcement
		total  int
	)
	for rows.Next() {
		a, err := scanAnnouncement(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan announcement failed: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list announcements failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, id string, p Patch) (*Announcement, error) {
	set := map[string]any{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}

	update := squirrel.Update("public.announcements").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING *")

	query, args, err := withCTE("updated", update)
	if err != nil {
		return nil, fmt.Errorf("build update announcement query failed: %w", err)
	}

	a, err := scanAnnouncement(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update announcement failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete announcement query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete announcement failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAnnouncement(row pgx.Row, extra ...any) (*Announcement, error) {
	var (
		a          Announcement
		authorID   *string
		authorName *string
	)
	dest := append([]any{&a.ID, &a.Title, &a.Content, &a.Priority, &a.PublishedAt, &authorID, &authorName}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if authorID != nil {
		a.Author = &Author{ID: *authorID, FullName: authorName}
	}
	return &a, nil
}
