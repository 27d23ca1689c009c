package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arshraina/dining-reservation-system/internal/model"
)

// VenueRepo is the MySQL-backed VenueStore.  Operating hours are
// stored as TIME columns and surfaced as HH:MM:SS strings.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// Create inserts the venue and populates its ID and CreatedAt.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	var website any
	if v.Website != "" {
		website = v.Website
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO venues (name, address, phone, website, open_time, close_time) VALUES (?,?,?,?,?,?)`,
		v.Name, v.Address, v.Phone, website, v.OpenTime, v.CloseTime)
	if err != nil {
		// 1062 is the MySQL duplicate-entry code; the only unique
		// key on venues is the phone number.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicatePhone
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM venues WHERE id = ?`, v.ID).Scan(&v.CreatedAt)
}

// GetByID fetches a venue by id.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx,
		`SELECT id, name, address, phone, website, open_time, close_time, created_at
		 FROM venues WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Venue{}, ErrVenueNotFound
	}
	return v, err
}

// Search matches venue names against %q% and returns the rows ordered
// by id.  LIKE under the default collation is case-insensitive, and an
// empty query degenerates to %% which matches everything.
func (r *VenueRepo) Search(ctx context.Context, q string) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, phone, website, open_time, close_time, created_at
		 FROM venues WHERE name LIKE ? ORDER BY id ASC`, "%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (model.Venue, error) {
	var v model.Venue
	var website sql.NullString
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.Phone, &website,
		&v.OpenTime, &v.CloseTime, &v.CreatedAt)
	if err != nil {
		return model.Venue{}, err
	}
	if website.Valid {
		v.Website = website.String
	}
	return v, nil
}
