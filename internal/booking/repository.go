package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every booking and returns how many were deleted.
	DeleteAll(ctx context.Context) (int64, error)

	// WithinTx runs fn in a single transaction. fn's error rolls it back.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of writes that must happen under one transaction.
type Tx interface {
	// LockRoom loads the room and holds a row lock on it until the transaction ends.
	// Concurrent admissions for the same room serialize here.
	LockRoom(ctx context.Context, roomID string) (*room.Room, error)
	// LockBooking loads the booking and holds a row lock on it.
	LockBooking(ctx context.Context, id string) (*Booking, error)
	// HasOverlap checks if there is any non-cancelled booking for the room in [start, end).
	// excludeBookingID is used during updates to ignore the booking itself.
	HasOverlap(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (bool, error)
	Create(ctx context.Context, booking *Booking) error
	Update(ctx context.Context, booking *Booking) error
}

var bookingColumns = []string{
	"b.id", "b.user_id", "b.room_id", "b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
	"r.id", "r.name", "r.description", "r.address", "r.capacity", "r.status", "r.created_at", "r.updated_at",
	"u.id", "u.email", "u.first_name", "u.last_name",
}

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

func (r *pgxRepository) selectBookings() squirrel.SelectBuilder {
	return r.psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.users u ON b.user_id = u.id")
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	b.Room = &room.Room{}
	b.User = &Owner{}
	dest := []any{
		&b.ID, &b.UserID, &b.RoomID, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&b.Room.ID, &b.Room.Name, &b.Room.Description, &b.Room.Address, &b.Room.Capacity, &b.Room.Status, &b.Room.CreatedAt, &b.Room.UpdatedAt,
		&b.User.ID, &b.User.Email, &b.User.FirstName, &b.User.LastName,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := r.selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func applyFilter(q squirrel.SelectBuilder, filter Filter) squirrel.SelectBuilder {
	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.RoomID != "" {
		q = q.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"b.status": filter.Status})
	}
	return q
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query, args, err := applyFilter(r.selectBookings(), filter).
		Column("count(*) OVER() AS total_count").
		OrderBy("b.created_at ASC", "b.id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	// The window count is unavailable when the offset is past the last row.
	if len(bookings) == 0 && filter.Offset > 0 {
		countQuery, countArgs, err := applyFilter(r.psql.Select("count(*)").From("public.bookings b"), filter).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count bookings query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count bookings failed: %w", err)
		}
	}

	return bookings, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteAll(ctx context.Context) (int64, error) {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.bookings")
	if err != nil {
		return 0, fmt.Errorf("delete all bookings failed: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *pgxRepository) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&pgxTx{tx: tx, psql: r.psql})
	})
}

type pgxTx struct {
	tx   pgx.Tx
	psql squirrel.StatementBuilderType
}

func (t *pgxTx) LockRoom(ctx context.Context, roomID string) (*room.Room, error) {
	query, args, err := t.psql.Select("id", "name", "description", "address", "capacity", "status", "created_at", "updated_at").
		From("public.rooms").
		Where(squirrel.Eq{"id": roomID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock room query failed: %w", err)
	}

	var rm room.Room
	if err := t.tx.QueryRow(ctx, query, args...).Scan(
		&rm.ID, &rm.Name, &rm.Description, &rm.Address, &rm.Capacity, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("lock room failed: %w", err)
	}
	return &rm, nil
}

func (t *pgxTx) LockBooking(ctx context.Context, id string) (*Booking, error) {
	query, args, err := t.psql.Select("id", "user_id", "room_id", "start_time", "end_time", "status", "created_at", "updated_at").
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock booking query failed: %w", err)
	}

	var b Booking
	if err := t.tx.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock booking failed: %w", err)
	}
	return &b, nil
}

func (t *pgxTx) HasOverlap(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (bool, error) {
	subQuery := t.psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (t *pgxTx) Create(ctx context.Context, b *Booking) error {
	query, args, err := t.psql.Insert("public.bookings").
		Columns("user_id", "room_id", "start_time", "end_time", "status").
		Values(b.UserID, b.RoomID, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := t.tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (t *pgxTx) Update(ctx context.Context, b *Booking) error {
	query, args, err := t.psql.Update("public.bookings").
		Set("room_id", b.RoomID).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	if err := t.tx.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	return nil
}
