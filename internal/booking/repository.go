package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"matchpoint/internal/db"
	"matchpoint/internal/schedule"
)

var ErrNotFound = errors.New("booking not found")

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ownerID string, slot schedule.Slot) (*Booking, error) {
	query := `
		INSERT INTO bookings (id, owner_id, play_date, hour, court, status)
		VALUES ($1, $2, $3, $4, $5, 'confirmed')
		RETURNING id, owner_id, play_date, hour, court, status, created_at
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, uuid.NewString(), ownerID, slot.Date, slot.Hour, slot.Court)
	if err != nil {
		// The partial unique index on confirmed slots backstops the
		// scheduler's lock; a violation means the slot was taken.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, schedule.ErrSlotConflict
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT id, owner_id, play_date, hour, court, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &b, nil
}

// SetCanceled marks the booking canceled. Canceling an already-canceled
// booking is a no-op; an unknown id is ErrNotFound.
func (r *repository) SetCanceled(ctx context.Context, id string) error {
	query := `
		UPDATE bookings
		SET status = 'canceled'
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}

	return nil
}

func (r *repository) exists(ctx context.Context, id string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)`, id)
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]Booking, error) {
	query := `
		SELECT id, owner_id, play_date, hour, court, status, created_at
		FROM bookings
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, ownerID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByDate(ctx context.Context, date string) ([]Booking, error) {
	query := `
		SELECT id, owner_id, play_date, hour, court, status, created_at
		FROM bookings
		WHERE play_date = $1 AND status = 'confirmed'
		ORDER BY hour ASC, court ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, date)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListConfirmedFrom(ctx context.Context, date string) ([]Booking, error) {
	query := `
		SELECT id, owner_id, play_date, hour, court, status, created_at
		FROM bookings
		WHERE play_date >= $1 AND status = 'confirmed'
		ORDER BY play_date ASC, hour ASC, court ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, date)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
