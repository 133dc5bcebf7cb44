package properties

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/property"
	"stayseek/internal/domain/shared/daterange"
	"stayseek/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock() time.Time { return date(2026, 9, 1) }

func seedRepo(t *testing.T) *memory.PropertyRepository {
	t.Helper()
	repo := memory.NewPropertyRepository()
	ctx := context.Background()

	seed := []*property.Property{
		{
			Name: "Villa Sunset", CityID: 1, CategoryName: "Villa", Tenant: 10,
			CreatedAt: date(2026, 1, 1),
			Rooms: []property.Room{
				{Name: "Suite", PriceCents: 30000, MaxGuests: 4, Quantity: 2},
				{Name: "Loft", PriceCents: 12000, MaxGuests: 2, Quantity: 1},
			},
		},
		{
			Name: "Hotel Centro", CityID: 1, CategoryName: "Hotel", Tenant: 11,
			CreatedAt: date(2026, 2, 1),
			Rooms: []property.Room{
				{Name: "Double", PriceCents: 8000, MaxGuests: 2, Quantity: 5},
			},
		},
		{
			Name: "Sold Out Inn", CityID: 1, CategoryName: "Hotel", Tenant: 11,
			CreatedAt: date(2026, 3, 1),
			Rooms: []property.Room{
				{Name: "Closet", PriceCents: 4000, MaxGuests: 2, Quantity: 0},
			},
		},
		{
			Name: "Villa Otra Ciudad", CityID: 2, CategoryName: "Villa", Tenant: 12,
			CreatedAt: date(2026, 4, 1),
			Rooms: []property.Room{
				{Name: "Suite", PriceCents: 20000, MaxGuests: 4, Quantity: 1},
			},
		},
	}
	for _, p := range seed {
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	return repo
}

func baseQuery() SearchPropertiesQuery {
	return SearchPropertiesQuery{
		CityID:   1,
		Guests:   2,
		CheckIn:  date(2026, 9, 10),
		CheckOut: date(2026, 9, 14),
	}
}

func TestSearchValidation(t *testing.T) {
	h := &SearchPropertiesHandler{Store: seedRepo(t), Clock: fixedClock}
	ctx := context.Background()

	noCity := baseQuery()
	noCity.CityID = 0
	if _, err := h.Handle(ctx, noCity); !errors.Is(err, ErrCityRequired) {
		t.Errorf("missing city: error = %v, want ErrCityRequired", err)
	}

	inverted := baseQuery()
	inverted.CheckIn, inverted.CheckOut = inverted.CheckOut, inverted.CheckIn
	if _, err := h.Handle(ctx, inverted); !errors.Is(err, daterange.ErrInvalidRange) {
		t.Errorf("inverted window: error = %v, want ErrInvalidRange", err)
	}

	past := baseQuery()
	past.CheckIn, past.CheckOut = date(2026, 8, 20), date(2026, 8, 25)
	if _, err := h.Handle(ctx, past); !errors.Is(err, daterange.ErrCheckInPast) {
		t.Errorf("past check-in: error = %v, want ErrCheckInPast", err)
	}
}

func TestSearchDropsPropertiesWithoutEligibleRooms(t *testing.T) {
	h := &SearchPropertiesHandler{Store: seedRepo(t), Clock: fixedClock}
	result, err := h.Handle(context.Background(), baseQuery())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range result.Data {
		if p.Name == "Sold Out Inn" {
			t.Fatal("a property whose every room fails eligibility must be dropped")
		}
		if p.Name == "Villa Otra Ciudad" {
			t.Fatal("city filter must exclude other cities")
		}
	}
	if result.Pagination.TotalItems != 2 {
		t.Errorf("total = %d, want 2", result.Pagination.TotalItems)
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	h := &SearchPropertiesHandler{Store: seedRepo(t), Clock: fixedClock}
	ctx := context.Background()

	single := baseQuery()
	single.Categories = []string{"vil"}
	got, err := h.Handle(ctx, single)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Data) != 1 || got.Data[0].Name != "Villa Sunset" {
		t.Errorf("single-token substring: got %d results", len(got.Data))
	}

	multi := baseQuery()
	multi.Categories = []string{"vil", "hotel"}
	got, err = h.Handle(ctx, multi)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Data) != 1 || got.Data[0].Name != "Hotel Centro" {
		t.Errorf("multi-token must be exact membership, got %d results", len(got.Data))
	}
}

func TestSearchSortByPrice(t *testing.T) {
	h := &SearchPropertiesHandler{Store: seedRepo(t), Clock: fixedClock}
	q := baseQuery()
	q.SortBy, q.Order = "price", "asc"
	got, err := h.Handle(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	// Villa Sunset's representative price is its cheapest eligible room.
	if got.Data[0].Name != "Hotel Centro" || got.Data[1].Name != "Villa Sunset" {
		t.Errorf("price asc order wrong: %s, %s", got.Data[0].Name, got.Data[1].Name)
	}
	if got.Data[1].MinPriceCents != 12000 {
		t.Errorf("representative price = %d, want 12000", got.Data[1].MinPriceCents)
	}

	q.Order = "desc"
	got, err = h.Handle(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if got.Data[0].Name != "Villa Sunset" {
		t.Errorf("price desc must reverse the order")
	}
}

func TestSearchPageOutOfRange(t *testing.T) {
	h := &SearchPropertiesHandler{Store: seedRepo(t), Clock: fixedClock}
	q := baseQuery()
	q.Page = 2
	if _, err := h.Handle(context.Background(), q); !errors.Is(err, dto.ErrPageOutOfRange) {
		t.Errorf("page 2 of 1: error = %v, want ErrPageOutOfRange", err)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	h := &SearchPropertiesHandler{Store: seedRepo(t), Clock: fixedClock}
	q := baseQuery()
	q.CityID = 99
	q.Page = 7
	got, err := h.Handle(context.Background(), q)
	if err != nil {
		t.Fatalf("empty result set must skip the page range check: %v", err)
	}
	if got.Pagination.TotalItems != 0 || len(got.Data) != 0 {
		t.Errorf("expected empty page, got %+v", got.Pagination)
	}
}

func TestSearchRoomConflictsDoNotUnlist(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()
	// Fill Hotel Centro's window with a live booking.
	if err := repo.RecordBooking(ctx, 2, 3, availability.Booking{
		ID: 100, CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 14), Status: availability.BookingConfirmed,
	}); err != nil {
		t.Fatal(err)
	}
	h := &SearchPropertiesHandler{Store: repo, Clock: fixedClock}
	got, err := h.Handle(ctx, baseQuery())
	if err != nil {
		t.Fatal(err)
	}
	var hotel *dto.ProcessedProperty
	for i := range got.Data {
		if got.Data[i].Name == "Hotel Centro" {
			hotel = &got.Data[i]
		}
	}
	if hotel == nil {
		t.Fatal("booked-over room type must stay listed")
	}
	if hotel.Rooms[0].BookingConflicts != 1 {
		t.Errorf("conflicts = %d, want 1 surfaced alongside the listing", hotel.Rooms[0].BookingConflicts)
	}
}
