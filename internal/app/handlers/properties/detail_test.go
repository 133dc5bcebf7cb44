package properties

import (
	"context"
	"errors"
	"testing"

	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/property"
)

func TestDetailNotFound(t *testing.T) {
	h := &PropertyDetailHandler{Store: seedRepo(t), Clock: fixedClock}
	q := PropertyDetailQuery{PropertyID: 999, Guests: 2, CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 14)}
	if _, err := h.Handle(context.Background(), q); !errors.Is(err, property.ErrNotFound) {
		t.Errorf("unknown property: error = %v, want ErrNotFound", err)
	}
}

func TestDetailDistinguishesEmptyAvailabilityFromNotFound(t *testing.T) {
	h := &PropertyDetailHandler{Store: seedRepo(t), Clock: fixedClock}
	// Sold Out Inn exists but has no eligible rooms.
	q := PropertyDetailQuery{PropertyID: 3, Guests: 2, CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 14)}
	got, err := h.Handle(context.Background(), q)
	if err != nil {
		t.Fatalf("existing property must not be a not-found: %v", err)
	}
	if got.HasAvailableRooms {
		t.Error("zero eligible rooms must surface HasAvailableRooms=false")
	}
	if got.Property.Name != "Sold Out Inn" {
		t.Errorf("property identity must still be returned, got %q", got.Property.Name)
	}
}

func TestDetailSurfacesConflicts(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()
	if err := repo.RecordBooking(ctx, 1, 2, availability.Booking{
		ID: 50, CheckIn: date(2026, 9, 12), CheckOut: date(2026, 9, 16), Status: availability.BookingPending,
	}); err != nil {
		t.Fatal(err)
	}
	h := &PropertyDetailHandler{Store: repo, Clock: fixedClock}
	q := PropertyDetailQuery{PropertyID: 1, Guests: 2, CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 14)}
	got, err := h.Handle(ctx, q)
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasAvailableRooms {
		t.Fatal("rooms remain listed despite conflicts")
	}
	var loftConflicts int
	for _, room := range got.Property.Rooms {
		if room.Name == "Loft" {
			loftConflicts = room.BookingConflicts
		}
	}
	if loftConflicts != 1 {
		t.Errorf("loft conflicts = %d, want 1", loftConflicts)
	}
}

func TestDetailValidatesInput(t *testing.T) {
	h := &PropertyDetailHandler{Store: seedRepo(t), Clock: fixedClock}
	ctx := context.Background()
	if _, err := h.Handle(ctx, PropertyDetailQuery{PropertyID: 0}); !errors.Is(err, ErrPropertyIDInvalid) {
		t.Errorf("zero id: error = %v, want ErrPropertyIDInvalid", err)
	}
	q := PropertyDetailQuery{PropertyID: 1, CheckIn: date(2026, 9, 14), CheckOut: date(2026, 9, 10)}
	if _, err := h.Handle(ctx, q); err == nil {
		t.Error("inverted window must be rejected before the store is touched")
	}
}
