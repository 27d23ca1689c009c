package model

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for interval validation.  Handlers translate both
// into HTTP 400 responses; the distinction matters for error messages
// and for tests that pin the validation order.
var (
	ErrInvalidFormat = errors.New("invalid time format")
	ErrInvalidRange  = errors.New("start time must be before end time")
)

// Interval is a half-open UTC time range [Start, End).  The start is
// included, the end is excluded, so two slots touching at an endpoint
// do not overlap.  Both fields are always stored in UTC.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals share at least one
// instant: a.Start < b.End && b.Start < a.End.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

// timestampLayouts are tried in order when parsing.  RFC3339 covers a
// trailing "Z" and explicit numeric offsets; the zoneless layouts are
// interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 timestamp and normalizes it to
// UTC.  Offsets other than UTC are converted, not rejected.
func ParseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
}

// ParseInterval builds an Interval from raw start and end timestamps.
// It fails with ErrInvalidFormat when either string is unparseable and
// with ErrInvalidRange when start >= end.
func ParseInterval(rawStart, rawEnd string) (Interval, error) {
	start, err := ParseTimestamp(rawStart)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseTimestamp(rawEnd)
	if err != nil {
		return Interval{}, err
	}
	if !start.Before(end) {
		return Interval{}, ErrInvalidRange
	}
	return Interval{Start: start, End: end}, nil
}
