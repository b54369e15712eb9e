package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/RoketV/share-it-project/internal/data/entity"
	"github.com/RoketV/share-it-project/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingRepository persists bookings and answers the time-partitioned
// queries. Temporal methods take "now" explicitly so the partitioning is
// deterministic under test.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindByIDForUser returns the booking only when userID is the booker or
	// the item's owner; anyone else sees no rows.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error)

	FindAllByBooker(ctx context.Context, bookerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error)
	FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error)
	FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error)
	FindByStatusByBooker(ctx context.Context, status entity.BookingStatus, bookerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)

	FindAllByOwnerPaged(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error)
	FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error)
	FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error)
	FindByStatusByOwner(ctx context.Context, status entity.BookingStatus, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)

	// Unpaged views used by the item aggregation and the comment gate.
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Booking, error)
	FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.Booking, error)
	FindPastByBookerAndItem(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) ([]*entity.Booking, error)

	// UpdateStatusGuarded sets the status unless the row is already APPROVED.
	// The conditional update is the linearizability boundary for concurrent
	// approval attempts; it reports whether a row was changed.
	UpdateStatusGuarded(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, item_id, booker_id, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ItemID,
		booking.BookerID,
		booking.Start,
		booking.End,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("item_id", booking.ItemID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.id = $1
	`

	return r.queryBooking(ctx, query, id)
}

func (r *bookingRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE b.id = $1 AND (b.booker_id = $2 OR i.owner_id = $2)
	`

	return r.queryBooking(ctx, query, id, userID)
}

func (r *bookingRepository) FindAllByBooker(ctx context.Context, bookerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.booker_id = $1
		ORDER BY b.start_date DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryBookings(ctx, query, bookerID, limit, offset)
}

func (r *bookingRepository) FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.booker_id = $1 AND b.start_date < $2 AND b.end_date > $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, bookerID, now, limit, offset)
}

func (r *bookingRepository) FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.booker_id = $1 AND b.end_date < $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, bookerID, now, limit, offset)
}

func (r *bookingRepository) FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.booker_id = $1 AND b.start_date > $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, bookerID, now, limit, offset)
}

func (r *bookingRepository) FindByStatusByBooker(ctx context.Context, status entity.BookingStatus, bookerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.booker_id = $1 AND b.status = $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, bookerID, status, limit, offset)
}

func (r *bookingRepository) FindAllByOwnerPaged(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1
		ORDER BY b.start_date DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryBookings(ctx, query, ownerID, limit, offset)
}

func (r *bookingRepository) FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1 AND b.start_date < $2 AND b.end_date > $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, ownerID, now, limit, offset)
}

func (r *bookingRepository) FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1 AND b.end_date < $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, ownerID, now, limit, offset)
}

func (r *bookingRepository) FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1 AND b.start_date > $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, ownerID, now, limit, offset)
}

func (r *bookingRepository) FindByStatusByOwner(ctx context.Context, status entity.BookingStatus, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1 AND b.status = $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryBookings(ctx, query, ownerID, status, limit, offset)
}

func (r *bookingRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1
		ORDER BY b.start_date DESC
	`

	return r.queryBookings(ctx, query, ownerID)
}

func (r *bookingRepository) FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.item_id = $1
		ORDER BY b.start_date DESC
	`

	return r.queryBookings(ctx, query, itemID)
}

func (r *bookingRepository) FindPastByBookerAndItem(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.booker_id = $1 AND b.item_id = $2 AND b.end_date < $3
	`

	return r.queryBookings(ctx, query, bookerID, itemID, now)
}

func (r *bookingRepository) UpdateStatusGuarded(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status <> 'APPROVED'
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) queryBooking(ctx context.Context, query string, args ...any) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&booking.ID,
		&booking.ItemID,
		&booking.BookerID,
		&booking.Start,
		&booking.End,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking", zap.Error(err))
		return nil, fmt.Errorf("find booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.ItemID,
			&booking.BookerID,
			&booking.Start,
			&booking.End,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
