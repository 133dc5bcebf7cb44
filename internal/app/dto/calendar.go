package dto

import (
	"time"

	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/property"
)

type CalendarDay struct {
	Date      string `json:"date"`
	Available int    `json:"available"`
	Booked    int    `json:"booked"`
	Blocked   bool   `json:"blocked"`
	RateCents *int64 `json:"rate_cents,omitempty"`
}

type RoomCalendar struct {
	RoomID int64         `json:"room_id"`
	Name   string        `json:"name"`
	Days   []CalendarDay `json:"days"`
}

// PropertyCalendar wraps per-room month calendars with the property
// identity and echoes the requested month.
type PropertyCalendar struct {
	PropertyID int64          `json:"property_id"`
	Name       string         `json:"name"`
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Rooms      []RoomCalendar `json:"rooms"`
}

// MapCalendar expands every room of a property for the target month.
func MapCalendar(p *property.Property, year int, month time.Month) PropertyCalendar {
	out := PropertyCalendar{
		PropertyID: int64(p.ID),
		Name:       p.Name,
		Year:       year,
		Month:      int(month),
		Rooms:      make([]RoomCalendar, 0, len(p.Rooms)),
	}
	for _, room := range p.Rooms {
		days := availability.ExpandCalendar(room.Bookings, room.Blocks, room.Rates, year, month)
		cal := RoomCalendar{RoomID: int64(room.ID), Name: room.Name, Days: make([]CalendarDay, 0, len(days))}
		for _, day := range days {
			entry := CalendarDay{
				Date:    day.Date.Format("2006-01-02"),
				Booked:  day.Booked,
				Blocked: day.Blocked,
			}
			if available := room.Quantity - day.Booked; available > 0 {
				entry.Available = available
			}
			if day.Rate != nil {
				cents := day.Rate.PriceCents
				entry.RateCents = &cents
			}
			cal.Days = append(cal.Days, entry)
		}
		out.Rooms = append(out.Rooms, cal)
	}
	return out
}
