package daterange

import (
	"fmt"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
)

// Range is an inclusive window of calendar days.
type Range struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Default returns the window from the first day of today's month up to today.
func Default(today Date) Range {
	return Range{Start: today.FirstOfMonth(), End: today}
}

// Normalize turns a candidate window into one that is safe to query.
//
// Rules, applied in order:
//  1. an absent end becomes today; an absent start becomes the first day of today's month
//  2. an end before start moves to today when today is not before start,
//     otherwise collapses onto start
//  3. an end still after today is rejected with ErrInvalidRange
//
// When rule 3 fires the corrected candidate is returned together with the
// error, so callers can show the analyst what the window collapsed to.
func Normalize(start, end, today Date) (Range, error) {
	if end.IsZero() {
		end = today
	}
	if start.IsZero() {
		start = today.FirstOfMonth()
	}

	if end.Before(start) {
		if !today.Before(start) {
			end = maxDate(start, today)
		} else {
			end = start
		}
	}

	r := Range{Start: start, End: end}
	if end.After(today) {
		return r, fmt.Errorf("%w: end %s is after today %s", apperrors.ErrInvalidRange, end, today)
	}
	return r, nil
}

// IsValid reports whether both bounds are present and start <= end <= today.
func IsValid(r Range, today Date) bool {
	if r.Start.IsZero() || r.End.IsZero() {
		return false
	}
	return !r.End.Before(r.Start) && !r.End.After(today)
}

// Validate is IsValid returning ErrInvalidRange with the offending bounds.
func Validate(r Range, today Date) error {
	if !IsValid(r, today) {
		return fmt.Errorf("%w: [%s, %s] with today %s", apperrors.ErrInvalidRange, r.Start, r.End, today)
	}
	return nil
}

// Contains reports whether instant t falls on a day inside r, as seen in loc.
// Both ends are inclusive: any time on the end day counts.
func (r Range) Contains(t time.Time, loc *time.Location) bool {
	d := DateOf(t, loc)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Bounds returns the first and last instants of r in loc, for storage queries.
func (r Range) Bounds(loc *time.Location) (from, to time.Time) {
	return r.Start.StartIn(loc), r.End.EndIn(loc)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start, r.End)
}
