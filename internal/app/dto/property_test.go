package dto

import (
	"testing"
	"time"

	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/property"
	"stayseek/internal/domain/shared/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testWindow(t *testing.T) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(date(2026, 9, 10), date(2026, 9, 14))
	if err != nil {
		t.Fatal(err)
	}
	return dr
}

func TestMapPropertyDropsIneligibleRooms(t *testing.T) {
	p := &property.Property{
		ID:   3,
		Name: "Casa Roja",
		Rooms: []property.Room{
			{ID: 1, Name: "Attic", Quantity: 0, MaxGuests: 4, PriceCents: 8000},
			{ID: 2, Name: "Single", Quantity: 2, MaxGuests: 1, PriceCents: 5000},
			{ID: 3, Name: "Double", Quantity: 1, MaxGuests: 2, PriceCents: 9000},
		},
	}
	got, ok := MapProperty(p, testWindow(t), 2)
	if !ok {
		t.Fatal("property with one eligible room must map")
	}
	if got.TotalRooms != 1 || len(got.Rooms) != 1 || got.Rooms[0].ID != 3 {
		t.Errorf("rooms = %+v, want only room 3", got.Rooms)
	}
	if got.MinPriceCents != 9000 {
		t.Errorf("min price = %d, want 9000", got.MinPriceCents)
	}
}

func TestMapPropertyAllRoomsIneligible(t *testing.T) {
	p := &property.Property{ID: 4, Rooms: []property.Room{{Quantity: 0, MaxGuests: 8}}}
	if _, ok := MapProperty(p, testWindow(t), 2); ok {
		t.Error("property with zero eligible rooms must not map")
	}
}

func TestMapPropertyKeepsConflictedRoomsListed(t *testing.T) {
	p := &property.Property{
		ID: 5,
		Rooms: []property.Room{{
			ID: 1, Quantity: 1, MaxGuests: 2, PriceCents: 7000,
			Bookings: []availability.Booking{{ID: 9, CheckIn: date(2026, 9, 11), CheckOut: date(2026, 9, 12), Status: availability.BookingConfirmed}},
			Blocks:   []availability.Block{{ID: 1, Start: date(2026, 9, 13), End: date(2026, 9, 13)}},
		}},
	}
	got, ok := MapProperty(p, testWindow(t), 2)
	if !ok {
		t.Fatal("conflicted but visible room must keep the property listed")
	}
	room := got.Rooms[0]
	if room.BookingConflicts != 1 || !room.Blocked {
		t.Errorf("conflict signals = %d/%v, want 1/true", room.BookingConflicts, room.Blocked)
	}
}

func TestMapPropertyUsesSeasonRateAtCheckIn(t *testing.T) {
	p := &property.Property{
		ID: 6,
		Rooms: []property.Room{{
			ID: 1, Quantity: 1, MaxGuests: 4, PriceCents: 10000,
			Rates: []availability.SeasonRate{{ID: 2, Start: date(2026, 9, 1), End: date(2026, 9, 30), PriceCents: 16000}},
		}},
	}
	got, _ := MapProperty(p, testWindow(t), 2)
	if got.Rooms[0].PriceCents != 16000 || got.Rooms[0].BasePriceCents != 10000 {
		t.Errorf("price = %d/%d, want 16000 resolved over 10000 base", got.Rooms[0].PriceCents, got.Rooms[0].BasePriceCents)
	}
	if got.MinPriceCents != 16000 {
		t.Errorf("min price = %d, want resolved 16000", got.MinPriceCents)
	}
}

func TestMapPropertyMainPicture(t *testing.T) {
	p := &property.Property{
		ID:       7,
		Pictures: []property.Picture{{ID: 1, Path: "a.jpg"}, {ID: 2, Path: "b.jpg", IsMain: true}},
		Rooms:    []property.Room{{Quantity: 1, MaxGuests: 2}},
	}
	got, _ := MapProperty(p, testWindow(t), 1)
	if got.MainPicture == nil || *got.MainPicture != "b.jpg" {
		t.Errorf("main picture = %v, want b.jpg", got.MainPicture)
	}

	p.Pictures = p.Pictures[:1]
	got, _ = MapProperty(p, testWindow(t), 1)
	if got.MainPicture != nil {
		t.Errorf("no main flag: picture = %v, want nil", *got.MainPicture)
	}
}

func sample(id int64, name string, price int64) ProcessedProperty {
	return ProcessedProperty{ID: id, Name: name, MinPriceCents: price}
}

func TestSortPropertiesByPrice(t *testing.T) {
	items := []ProcessedProperty{sample(1, "B", 300), sample(2, "A", 100), sample(3, "C", 200)}
	SortProperties(items, SortByPrice, OrderAsc)
	if items[0].ID != 2 || items[1].ID != 3 || items[2].ID != 1 {
		t.Fatalf("asc order = %v", ids(items))
	}
	SortProperties(items, SortByPrice, OrderDesc)
	if items[0].ID != 1 || items[1].ID != 3 || items[2].ID != 2 {
		t.Fatalf("desc must be the exact reverse, got %v", ids(items))
	}
}

func TestSortPropertiesByName(t *testing.T) {
	items := []ProcessedProperty{sample(1, "casa", 0), sample(2, "Aurora", 0), sample(3, "Bella", 0)}
	SortProperties(items, SortByName, OrderAsc)
	if items[0].ID != 2 || items[1].ID != 3 || items[2].ID != 1 {
		t.Fatalf("name asc order = %v", ids(items))
	}
}

func TestSortPropertiesNoKeyPreservesOrder(t *testing.T) {
	items := []ProcessedProperty{sample(9, "Z", 900), sample(1, "A", 100)}
	SortProperties(items, "", OrderAsc)
	if items[0].ID != 9 || items[1].ID != 1 {
		t.Fatalf("input order must be preserved, got %v", ids(items))
	}
}

func ids(items []ProcessedProperty) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
