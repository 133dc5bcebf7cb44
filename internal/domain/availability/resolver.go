package availability

import (
	"time"

	"stayseek/internal/domain/shared/daterange"
)

// RoomTerms is the slice of room state the resolver needs.
type RoomTerms struct {
	Quantity   int
	MaxGuests  int
	PriceCents int64
}

// Result carries the two-tier availability verdict for one room.
//
// Offered answers "is this room type listed at all" and depends only on
// quantity and guest capacity. The conflict fields answer "are the dates
// actually free" and are surfaced separately so detail and calendar views
// can render them; they do not unlist the room.
type Result struct {
	Offered          bool
	BookingConflicts int
	Blocked          bool
	PriceCents       int64
}

// Resolve computes availability for one room over a query window.
// The caller guarantees window.CheckIn < window.CheckOut.
func Resolve(terms RoomTerms, bookings []Booking, blocks []Block, rates []SeasonRate, window daterange.DateRange, guests int) Result {
	res := Result{
		Offered:    terms.Quantity > 0 && terms.MaxGuests >= guests,
		PriceCents: PriceOn(terms.PriceCents, rates, window.CheckIn),
	}
	for _, b := range bookings {
		if b.Counts() && b.Overlaps(window) {
			res.BookingConflicts++
		}
	}
	for _, blk := range blocks {
		if blk.Overlaps(window) {
			res.Blocked = true
			break
		}
	}
	return res
}

// PriceOn resolves the nightly price for a single date: the first season
// rate whose interval contains the date wins, otherwise the base price.
// Overlapping rates are not rejected here; first match in fetch order is
// deliberately kept.
func PriceOn(baseCents int64, rates []SeasonRate, day time.Time) int64 {
	for _, r := range rates {
		if r.Contains(day) {
			return r.PriceCents
		}
	}
	return baseCents
}

// rateOn returns the first matching season rate for a day, if any.
func rateOn(rates []SeasonRate, day time.Time) *SeasonRate {
	for i := range rates {
		if rates[i].Contains(day) {
			rate := rates[i]
			return &rate
		}
	}
	return nil
}
