package availability

import (
	"time"

	"stayseek/internal/domain/shared/daterange"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCanceled  BookingStatus = "CANCELED"
)

// Booking is a stay record owned by the external booking subsystem.
// The interval is half-open: check-in inclusive, check-out exclusive.
type Booking struct {
	ID       int64
	CheckIn  time.Time
	CheckOut time.Time
	Status   BookingStatus
}

// Counts reports whether the booking participates in availability math.
// Canceled bookings never block a room.
func (b Booking) Counts() bool {
	return b.Status != BookingCanceled
}

func (b Booking) Overlaps(window daterange.DateRange) bool {
	return window.Overlaps(b.CheckIn, b.CheckOut)
}

// Block is an owner-declared block-out, stored as a closed date interval.
type Block struct {
	ID     int64
	Start  time.Time
	End    time.Time
	Reason string
}

func (b Block) Overlaps(window daterange.DateRange) bool {
	return window.Overlaps(b.Start, b.End)
}

// SeasonRate overrides a room's base nightly price on a closed date interval.
type SeasonRate struct {
	ID         int64
	Start      time.Time
	End        time.Time
	PriceCents int64
}

func (r SeasonRate) Overlaps(window daterange.DateRange) bool {
	return window.Overlaps(r.Start, r.End)
}

// Contains reports whether the closed interval covers the given day.
func (r SeasonRate) Contains(day time.Time) bool {
	d := daterange.Day(day)
	return !d.Before(daterange.Day(r.Start)) && !d.After(daterange.Day(r.End))
}
