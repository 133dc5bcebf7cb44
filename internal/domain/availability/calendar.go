package availability

import (
	"time"

	"stayseek/internal/domain/shared/daterange"
)

// CalendarDay is one day of a room's monthly calendar.
type CalendarDay struct {
	Date    time.Time
	Booked  int
	Blocked bool
	Rate    *SeasonRate
}

// ExpandCalendar produces one CalendarDay per day of the target month, in
// chronological order. Each day is tested as its own [day, day+1) window.
// A pure function of its inputs; safe to call repeatedly.
func ExpandCalendar(bookings []Booking, blocks []Block, rates []SeasonRate, year int, month time.Month) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	days := make([]CalendarDay, 0, daysInMonth)
	for i := 0; i < daysInMonth; i++ {
		date := first.AddDate(0, 0, i)
		window := daterange.SingleDay(date)
		day := CalendarDay{Date: date, Rate: rateOn(rates, date)}
		for _, b := range bookings {
			if b.Counts() && b.Overlaps(window) {
				day.Booked++
			}
		}
		for _, blk := range blocks {
			if blk.Overlaps(window) {
				day.Blocked = true
				break
			}
		}
		days = append(days, day)
	}
	return days
}
