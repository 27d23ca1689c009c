package repository

import (
	"context"
	"database/sql"

	"github.com/arshraina/dining-reservation-system/internal/model"
)

// BookingRepo is the MySQL-backed BookingStore.  Insert runs inside a
// transaction that locks the venue's booking rows, so the overlap
// re-check and the write are atomic even without the coordinator's
// per-venue lock.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Insert commits one booking or mutates nothing.  The SELECT ... FOR
// UPDATE takes row locks on the venue's existing bookings, which
// serializes concurrent inserts for the same venue at the database
// level; the overlap check then runs against that locked snapshot.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx,
		`SELECT start_time, end_time FROM bookings WHERE place_id = ? FOR UPDATE`, b.VenueID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var existing model.Interval
		if err := rows.Scan(&existing.Start, &existing.End); err != nil {
			rows.Close()
			return err
		}
		if existing.Overlaps(b.Slot) {
			rows.Close()
			return ErrSlotConflict
		}
	}
	if err := rows.Close(); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, place_id, start_time, end_time, status) VALUES (?,?,?,?,?)`,
		b.UserID, b.VenueID, b.Slot.Start, b.Slot.End, model.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.BookingStatusConfirmed
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByVenue returns the venue's bookings ascending by start time.
func (r *BookingRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT id, user_id, place_id, start_time, end_time, status, created_at
		 FROM bookings WHERE place_id = ? ORDER BY start_time ASC`, venueID)
}

// ListByUser returns the user's bookings ascending by start time.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT id, user_id, place_id, start_time, end_time, status, created_at
		 FROM bookings WHERE user_id = ? ORDER BY start_time ASC`, userID)
}

func (r *BookingRepo) list(ctx context.Context, query string, arg uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.VenueID,
			&b.Slot.Start, &b.Slot.End, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Slot.Start = b.Slot.Start.UTC()
		b.Slot.End = b.Slot.End.UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}
