package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/property"
	"stayseek/internal/domain/shared/daterange"
)

// ErrBookingNotFound is returned when a cancellation references an
// unknown booking.
var ErrBookingNotFound = errors.New("memory: booking not found")

// PropertyRepository is an in-memory store used by tests and by the demo
// wiring when no MongoDB is configured. It applies the same predicate and
// window pre-filtering contract as the mongo repository.
type PropertyRepository struct {
	mu         sync.RWMutex
	nextID     int64
	nextSubID  int64
	items      map[property.PropertyID]*property.Property
	categories []property.Category
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[property.PropertyID]*property.Property)}
}

// SeedCategory registers a lookup category; Tenant 0 makes it global.
func (r *PropertyRepository) SeedCategory(c property.Category) property.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		r.nextSubID++
		c.ID = property.CategoryID(r.nextSubID)
	}
	r.categories = append(r.categories, c)
	return c
}

func (r *PropertyRepository) Visible(ctx context.Context, tenant property.TenantID) ([]property.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]property.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.Global() || (tenant != 0 && c.Tenant == tenant) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *PropertyRepository) Matching(ctx context.Context, params property.SearchParams) ([]*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*property.Property, 0, len(r.items))
	for _, item := range r.items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if item.CityID != params.City {
			continue
		}
		if !item.HasVisibleRoom(params.Guests) {
			continue
		}
		if !params.MatchesName(item.Name) {
			continue
		}
		if !params.MatchesCategory(item.CategoryName) {
			continue
		}
		matches = append(matches, cloneTrimmed(item, params.Window))
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (r *PropertyRepository) ByID(ctx context.Context, id property.PropertyID, window daterange.DateRange) (*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, property.ErrNotFound
	}
	return cloneTrimmed(item, window), nil
}

func (r *PropertyRepository) ForCalendar(ctx context.Context, id property.PropertyID, year int, month time.Month) (*property.Property, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	window := daterange.DateRange{CheckIn: first, CheckOut: first.AddDate(0, 1, 0)}
	return r.ByID(ctx, id, window)
}

func (r *PropertyRepository) Get(ctx context.Context, id property.PropertyID) (*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, property.ErrNotFound
	}
	return clone(item), nil
}

func (r *PropertyRepository) Owned(ctx context.Context, tenant property.TenantID, offset, limit int) ([]*property.Property, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]*property.Property, 0)
	for _, item := range r.items {
		if item.Tenant == tenant {
			owned = append(owned, item)
		}
	}
	// Newest created first; id breaks ties for deterministic paging.
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})
	total := len(owned)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]*property.Property, 0, end-offset)
	for _, item := range owned[offset:end] {
		page = append(page, clone(item))
	}
	return page, total, nil
}

func (r *PropertyRepository) Insert(ctx context.Context, p *property.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = property.PropertyID(r.nextID)
	r.assignIDs(p)
	r.items[p.ID] = clone(p)
	return nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *property.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return property.ErrNotFound
	}
	r.assignIDs(p)
	r.items[p.ID] = clone(p)
	return nil
}

func (r *PropertyRepository) RecordBooking(ctx context.Context, propertyID property.PropertyID, roomID property.RoomID, b availability.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[propertyID]
	if !ok {
		return property.ErrNotFound
	}
	room, err := item.RoomByID(roomID)
	if err != nil {
		return err
	}
	for i := range room.Bookings {
		if room.Bookings[i].ID == b.ID {
			room.Bookings[i] = b
			return nil
		}
	}
	room.Bookings = append(room.Bookings, b)
	return nil
}

func (r *PropertyRepository) CancelBooking(ctx context.Context, propertyID property.PropertyID, roomID property.RoomID, bookingID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[propertyID]
	if !ok {
		return property.ErrNotFound
	}
	room, err := item.RoomByID(roomID)
	if err != nil {
		return err
	}
	for i := range room.Bookings {
		if room.Bookings[i].ID == bookingID {
			room.Bookings[i].Status = availability.BookingCanceled
			return nil
		}
	}
	return ErrBookingNotFound
}

func (r *PropertyRepository) assignIDs(p *property.Property) {
	for i := range p.Rooms {
		if p.Rooms[i].ID == 0 {
			r.nextSubID++
			p.Rooms[i].ID = property.RoomID(r.nextSubID)
		}
		for j := range p.Rooms[i].Blocks {
			if p.Rooms[i].Blocks[j].ID == 0 {
				r.nextSubID++
				p.Rooms[i].Blocks[j].ID = r.nextSubID
			}
		}
		for j := range p.Rooms[i].Rates {
			if p.Rooms[i].Rates[j].ID == 0 {
				r.nextSubID++
				p.Rooms[i].Rates[j].ID = r.nextSubID
			}
		}
	}
	for i := range p.Pictures {
		if p.Pictures[i].ID == 0 {
			r.nextSubID++
			p.Pictures[i].ID = r.nextSubID
		}
	}
}

// cloneTrimmed copies a property and pre-filters each room's records to
// the window: live bookings and blocks by the overlap test, rates
// likewise, canceled bookings dropped.
func cloneTrimmed(p *property.Property, window daterange.DateRange) *property.Property {
	out := clone(p)
	for i := range out.Rooms {
		room := &out.Rooms[i]
		bookings := room.Bookings[:0:0]
		for _, b := range room.Bookings {
			if b.Counts() && b.Overlaps(window) {
				bookings = append(bookings, b)
			}
		}
		room.Bookings = bookings
		blocks := room.Blocks[:0:0]
		for _, blk := range room.Blocks {
			if blk.Overlaps(window) {
				blocks = append(blocks, blk)
			}
		}
		room.Blocks = blocks
		rates := room.Rates[:0:0]
		for _, rate := range room.Rates {
			if rate.Overlaps(window) {
				rates = append(rates, rate)
			}
		}
		room.Rates = rates
	}
	return out
}

func clone(p *property.Property) *property.Property {
	out := *p
	out.Pictures = append([]property.Picture(nil), p.Pictures...)
	out.Rooms = make([]property.Room, len(p.Rooms))
	for i, room := range p.Rooms {
		copied := room
		copied.Bookings = append([]availability.Booking(nil), room.Bookings...)
		copied.Blocks = append([]availability.Block(nil), room.Blocks...)
		copied.Rates = append([]availability.SeasonRate(nil), room.Rates...)
		out.Rooms[i] = copied
	}
	return &out
}

var (
	_ property.Repository         = (*PropertyRepository)(nil)
	_ property.CategoryRepository = (*PropertyRepository)(nil)
	_ property.BookingSink        = (*PropertyRepository)(nil)
)
