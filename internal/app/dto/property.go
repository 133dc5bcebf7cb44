package dto

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/property"
	"stayseek/internal/domain/shared/daterange"
)

// ProcessedRoom annotates an eligible room with its resolved price and the
// date-conflict signals for the queried window.
type ProcessedRoom struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	MaxGuests        int       `json:"max_guests"`
	Quantity         int       `json:"quantity"`
	PriceCents       int64     `json:"price_cents"`
	BasePriceCents   int64     `json:"base_price_cents"`
	Picture          string    `json:"picture,omitempty"`
	BookingConflicts int       `json:"booking_conflicts"`
	Blocked          bool      `json:"blocked"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	Availability     string    `json:"availability"`
}

// ProcessedProperty is the aggregated search/detail view of a property.
type ProcessedProperty struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	Category      string          `json:"category"`
	MainPicture   *string         `json:"main_picture"`
	MinPriceCents int64           `json:"min_price_cents"`
	TotalRooms    int             `json:"total_rooms"`
	Rooms         []ProcessedRoom `json:"rooms"`
}

// PropertyDetail pairs the processed view with an explicit availability
// verdict so callers can tell "found, nothing bookable" apart from a plain
// result.
type PropertyDetail struct {
	Property          ProcessedProperty `json:"property"`
	HasAvailableRooms bool              `json:"has_available_rooms"`
}

// MapProperty builds the processed view for one property. The second
// return is false when no room passes the listing gate; search drops such
// properties, detail reports them as found-but-empty.
func MapProperty(p *property.Property, window daterange.DateRange, guests int) (ProcessedProperty, bool) {
	out := ProcessedProperty{
		ID:          int64(p.ID),
		Name:        p.Name,
		Location:    p.Location,
		Category:    p.CategoryName,
		MainPicture: p.MainPicture(),
	}
	for _, room := range p.Rooms {
		res := availability.Resolve(room.Terms(), room.Bookings, room.Blocks, room.Rates, window, guests)
		if !res.Offered {
			continue
		}
		out.Rooms = append(out.Rooms, ProcessedRoom{
			ID:               int64(room.ID),
			Name:             room.Name,
			MaxGuests:        room.MaxGuests,
			Quantity:         room.Quantity,
			PriceCents:       res.PriceCents,
			BasePriceCents:   room.PriceCents,
			Picture:          room.Picture,
			BookingConflicts: res.BookingConflicts,
			Blocked:          res.Blocked,
			CheckIn:          window.CheckIn,
			CheckOut:         window.CheckOut,
			Availability:     describeAvailability(res),
		})
		if len(out.Rooms) == 1 || res.PriceCents < out.MinPriceCents {
			out.MinPriceCents = res.PriceCents
		}
	}
	out.TotalRooms = len(out.Rooms)
	return out, len(out.Rooms) > 0
}

func describeAvailability(res availability.Result) string {
	parts := make([]string, 0, 2)
	if res.BookingConflicts > 0 {
		parts = append(parts, fmt.Sprintf("%d overlapping booking(s)", res.BookingConflicts))
	}
	if res.Blocked {
		parts = append(parts, "blocked by the owner for part of the stay")
	}
	if len(parts) == 0 {
		return "free for the requested dates"
	}
	return strings.Join(parts, "; ")
}

type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SortProperties orders the slice in place. Price sorts on the minimum
// eligible room price. An empty key preserves input order.
func SortProperties(items []ProcessedProperty, key SortKey, order SortOrder) {
	var less func(a, b ProcessedProperty) bool
	switch key {
	case SortByName:
		less = func(a, b ProcessedProperty) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByPrice:
		less = func(a, b ProcessedProperty) bool { return a.MinPriceCents < b.MinPriceCents }
	default:
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if order == OrderDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
