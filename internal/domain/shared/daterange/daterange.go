package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: check-in must be before check-out")
	ErrCheckInPast  = errors.New("daterange: check-in date is in the past")
)

// DateRange is a half-open stay window: check-in inclusive, check-out exclusive.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New normalizes both ends to UTC midnight and rejects empty or inverted windows.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if !dr.CheckIn.Before(dr.CheckOut) {
		return DateRange{}, ErrInvalidRange
	}
	return dr, nil
}

// ValidateNotPast rejects windows whose check-in precedes today.
func (r DateRange) ValidateNotPast(now time.Time) error {
	if r.CheckIn.Before(Day(now)) {
		return ErrCheckInPast
	}
	return nil
}

// Overlaps reports whether the record interval [start, end] intersects the
// window. The test is half-open on the window side: start < check-out and
// end > check-in. The same test is used for half-open records (bookings)
// and closed records (blocks, season rates).
func (r DateRange) Overlaps(start, end time.Time) bool {
	return start.Before(r.CheckOut) && end.After(r.CheckIn)
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / (24 * time.Hour))
}

// Day truncates a timestamp to UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SingleDay returns the [day, day+1) window used for calendar expansion.
func SingleDay(day time.Time) DateRange {
	start := Day(day)
	return DateRange{CheckIn: start, CheckOut: start.AddDate(0, 0, 1)}
}
