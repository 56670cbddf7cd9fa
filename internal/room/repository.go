package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every room and returns how many were deleted.
	DeleteAll(ctx context.Context) (int64, error)
}

var roomColumns = []string{"id", "name", "description", "address", "capacity", "status", "created_at", "updated_at"}

type pgxRepository struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanRoom(row pgx.Row, rm *Room, extra ...any) error {
	dest := []any{&rm.ID, &rm.Name, &rm.Description, &rm.Address, &rm.Capacity, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	query, args, err := r.psql.Insert("public.rooms").
		Columns("name", "description", "address", "capacity", "status").
		Values(rm.Name, rm.Description, rm.Address, rm.Capacity, rm.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	query, args, err := r.psql.Select(roomColumns...).
		From("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	var rm Room
	if err := scanRoom(r.pool.QueryRow(ctx, query, args...), &rm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	base := r.psql.Select().From("public.rooms")
	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"status": filter.Status})
	}

	query, args, err := base.Columns(roomColumns...).
		Column("count(*) OVER() AS total_count").
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int
	for rows.Next() {
		var rm Room
		if err := scanRoom(rows, &rm, &total); err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rooms failed: %w", err)
	}

	// The window count is unavailable when the offset is past the last row.
	if len(rooms) == 0 && filter.Offset > 0 {
		countQuery, countArgs, err := base.Columns("count(*)").ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count rooms query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count rooms failed: %w", err)
		}
	}

	return rooms, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	query, args, err := r.psql.Update("public.rooms").
		Set("name", rm.Name).
		Set("description", rm.Description).
		Set("address", rm.Address).
		Set("capacity", rm.Capacity).
		Set("status", rm.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rm.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rm.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.psql.Delete("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrLinked
		}
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteAll(ctx context.Context) (int64, error) {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.rooms")
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrLinked
		}
		return 0, fmt.Errorf("delete all rooms failed: %w", err)
	}
	return ct.RowsAffected(), nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
