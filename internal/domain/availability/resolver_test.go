package availability

import (
	"testing"
	"time"

	"stayseek/internal/domain/shared/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(t *testing.T, in, out time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(in, out)
	if err != nil {
		t.Fatalf("bad test window: %v", err)
	}
	return dr
}

func TestResolveGatesOnQuantityAndGuests(t *testing.T) {
	w := window(t, date(2026, 9, 10), date(2026, 9, 15))
	cases := []struct {
		name    string
		terms   RoomTerms
		guests  int
		offered bool
	}{
		{"zero quantity never offered", RoomTerms{Quantity: 0, MaxGuests: 6, PriceCents: 10000}, 2, false},
		{"too many guests", RoomTerms{Quantity: 3, MaxGuests: 2, PriceCents: 10000}, 3, false},
		{"exact guest fit", RoomTerms{Quantity: 1, MaxGuests: 2, PriceCents: 10000}, 2, true},
		{"plenty of room", RoomTerms{Quantity: 5, MaxGuests: 8, PriceCents: 10000}, 2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.terms, nil, nil, nil, w, tc.guests)
			if got.Offered != tc.offered {
				t.Errorf("Offered = %v, want %v", got.Offered, tc.offered)
			}
		})
	}
}

func TestResolveCountsConflictsWithoutUnlisting(t *testing.T) {
	w := window(t, date(2026, 9, 10), date(2026, 9, 15))
	terms := RoomTerms{Quantity: 2, MaxGuests: 4, PriceCents: 12000}
	bookings := []Booking{
		{ID: 1, CheckIn: date(2026, 9, 11), CheckOut: date(2026, 9, 13), Status: BookingConfirmed},
		{ID: 2, CheckIn: date(2026, 9, 14), CheckOut: date(2026, 9, 18), Status: BookingPending},
		{ID: 3, CheckIn: date(2026, 9, 11), CheckOut: date(2026, 9, 13), Status: BookingCanceled},
		{ID: 4, CheckIn: date(2026, 9, 5), CheckOut: date(2026, 9, 10), Status: BookingConfirmed}, // ends at check-in
	}
	got := Resolve(terms, bookings, nil, nil, w, 2)
	if !got.Offered {
		t.Fatal("room with conflicts must stay listed")
	}
	if got.BookingConflicts != 2 {
		t.Errorf("BookingConflicts = %d, want 2 (canceled and adjacent excluded)", got.BookingConflicts)
	}
}

func TestResolveBlockedFlag(t *testing.T) {
	w := window(t, date(2026, 9, 10), date(2026, 9, 15))
	terms := RoomTerms{Quantity: 1, MaxGuests: 2, PriceCents: 9000}

	blocked := Resolve(terms, nil, []Block{{ID: 1, Start: date(2026, 9, 12), End: date(2026, 9, 12)}}, nil, w, 1)
	if !blocked.Blocked {
		t.Error("single-day block inside window must set Blocked")
	}
	clear := Resolve(terms, nil, []Block{{ID: 2, Start: date(2026, 9, 20), End: date(2026, 9, 25)}}, nil, w, 1)
	if clear.Blocked {
		t.Error("block outside window must not set Blocked")
	}
}

func TestPriceOnFirstMatchWins(t *testing.T) {
	rates := []SeasonRate{
		{ID: 1, Start: date(2026, 12, 20), End: date(2027, 1, 5), PriceCents: 20000},
		{ID: 2, Start: date(2026, 12, 24), End: date(2026, 12, 31), PriceCents: 30000},
	}
	if got := PriceOn(10000, rates, date(2026, 12, 25)); got != 20000 {
		t.Errorf("overlapping rates: price = %d, want first match 20000", got)
	}
	if got := PriceOn(10000, rates, date(2026, 11, 1)); got != 10000 {
		t.Errorf("no matching rate: price = %d, want base 10000", got)
	}
	if got := PriceOn(10000, rates, date(2027, 1, 5)); got != 20000 {
		t.Errorf("closed interval end day: price = %d, want 20000", got)
	}
	if got := PriceOn(10000, rates, date(2027, 1, 6)); got != 10000 {
		t.Errorf("day after rate end: price = %d, want base 10000", got)
	}
}

func TestResolvePriceUsesCheckInDate(t *testing.T) {
	w := window(t, date(2026, 12, 23), date(2026, 12, 27))
	terms := RoomTerms{Quantity: 1, MaxGuests: 2, PriceCents: 10000}
	rates := []SeasonRate{{ID: 1, Start: date(2026, 12, 24), End: date(2026, 12, 31), PriceCents: 25000}}
	got := Resolve(terms, nil, nil, rates, w, 1)
	if got.PriceCents != 10000 {
		t.Errorf("price = %d, want base 10000 (rate does not cover check-in)", got.PriceCents)
	}
}
