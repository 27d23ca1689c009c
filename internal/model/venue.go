package model

import (
	"fmt"
	"time"
)

// Venue represents a dining place with fixed operating hours.  It
// corresponds to a row in the `venues` table.  Venues are created by
// an administrative action and are immutable afterwards; they are
// never deleted.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name, searched by substring.
//  Address   – street address.
//  Phone     – contact number, unique across venues.
//  Website   – optional URL, may be empty.
//  OpenTime  – opening time of day (HH:MM:SS).
//  CloseTime – closing time of day (HH:MM:SS).
//  CreatedAt – creation timestamp.
type Venue struct {
	ID        uint64
	Name      string
	Address   string
	Phone     string
	Website   string
	OpenTime  string
	CloseTime string
	CreatedAt time.Time
}

// clockLayouts accepted for operating hours.
var clockLayouts = []string{"15:04:05", "15:04"}

// ParseClock validates a time-of-day string and returns it in the
// canonical HH:MM:SS form.
func ParseClock(raw string) (string, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
}

// ValidateHours checks a venue's operating hours and returns both in
// canonical form.  Fails with ErrInvalidRange when the venue would
// close before it opens.
func ValidateHours(open, close string) (string, string, error) {
	o, err := ParseClock(open)
	if err != nil {
		return "", "", err
	}
	c, err := ParseClock(close)
	if err != nil {
		return "", "", err
	}
	if o >= c {
		return "", "", ErrInvalidRange
	}
	return o, c, nil
}
