package apartment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// GetByOwner returns the apartment owned by the user, or ErrNotFound.
	GetByOwner(ctx context.Context, ownerID string) (*Apartment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByOwner(ctx context.Context, ownerID string) (*Apartment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.unit_number", "a.floor_number", "a.block_name", "a.area_sqm::text", "a.created_at",
		"u.id", "u.full_name", "u.email",
	).
		From("public.apartments a").
		Join("public.users u ON u.id = a.owner_id").
		Where(squirrel.Eq{"a.owner_id": ownerID}).
		OrderBy("a.created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get apartment query failed: %w", err)
	}

	var (
		a Apartment
		o Owner
	)
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.UnitNumber, &a.FloorNumber, &a.BlockName, &a.AreaSqm, &a.CreatedAt,
		&o.ID, &o.FullName, &o.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get apartment by owner failed: %w", err)
	}
	a.Owner = &o
	return &a, nil
}
