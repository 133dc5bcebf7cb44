package availability

import (
	"testing"
	"time"
)

func TestExpandCalendarMonthLengths(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2025, time.February, 28},
		{2028, time.February, 29},
		{2026, time.April, 30},
		{2026, time.January, 31},
	}
	for _, tc := range cases {
		got := ExpandCalendar(nil, nil, nil, tc.year, tc.month)
		if len(got) != tc.days {
			t.Errorf("%d-%02d: %d days, want %d", tc.year, tc.month, len(got), tc.days)
		}
	}
}

func TestExpandCalendarChronologicalOrder(t *testing.T) {
	days := ExpandCalendar(nil, nil, nil, 2025, time.February)
	for i, day := range days {
		want := time.Date(2025, time.February, 1+i, 0, 0, 0, 0, time.UTC)
		if !day.Date.Equal(want) {
			t.Fatalf("day %d = %v, want %v", i, day.Date, want)
		}
	}
}

func TestExpandCalendarFlagsPerDay(t *testing.T) {
	bookings := []Booking{
		{ID: 1, CheckIn: date(2026, 9, 3), CheckOut: date(2026, 9, 6), Status: BookingConfirmed},
		{ID: 2, CheckIn: date(2026, 9, 5), CheckOut: date(2026, 9, 7), Status: BookingPending},
		{ID: 3, CheckIn: date(2026, 9, 3), CheckOut: date(2026, 9, 6), Status: BookingCanceled},
	}
	blocks := []Block{{ID: 1, Start: date(2026, 9, 10), End: date(2026, 9, 12)}}
	rates := []SeasonRate{{ID: 7, Start: date(2026, 9, 1), End: date(2026, 9, 4), PriceCents: 18000}}

	days := ExpandCalendar(bookings, blocks, rates, 2026, time.September)
	if len(days) != 30 {
		t.Fatalf("September has %d days, want 30", len(days))
	}

	byDay := func(d int) CalendarDay { return days[d-1] }

	if got := byDay(3).Booked; got != 1 {
		t.Errorf("sep 3 booked = %d, want 1", got)
	}
	if got := byDay(5).Booked; got != 2 {
		t.Errorf("sep 5 booked = %d, want 2 (both live bookings overlap)", got)
	}
	// Check-out day is free: half-open interval.
	if got := byDay(7).Booked; got != 0 {
		t.Errorf("sep 7 booked = %d, want 0", got)
	}
	// The uniform half-open test leaves the block's end day open: the
	// per-day window [12, 13) does not overlap a record ending on the 12th.
	if byDay(9).Blocked || !byDay(10).Blocked || !byDay(11).Blocked || byDay(12).Blocked {
		t.Error("block sep 10-12 must flag days 10 and 11 only")
	}
	if byDay(4).Rate == nil || byDay(4).Rate.PriceCents != 18000 {
		t.Error("sep 4 must carry the season rate")
	}
	if byDay(5).Rate != nil {
		t.Error("sep 5 is outside the rate interval")
	}
}
