package property

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/shared/daterange"
)

var (
	ErrNotFound         = errors.New("property: not found")
	ErrNameRequired     = errors.New("property: name is required")
	ErrTenantRequired   = errors.New("property: tenant is required")
	ErrBadCategoryRef   = errors.New("property: category reference must be a positive id")
	ErrBadCityRef       = errors.New("property: city reference must be a positive id")
	ErrRoomNameRequired = errors.New("property: room name is required")
	ErrRoomPrice        = errors.New("property: room price must be non-negative")
	ErrRoomGuests       = errors.New("property: room must sleep at least 1 guest")
	ErrRoomQuantity     = errors.New("property: room quantity must be non-negative")
	ErrRoomNotFound     = errors.New("property: room not found")
)

type (
	PropertyID int64
	RoomID     int64
	TenantID   int64
	CategoryID int64
	CityID     int64
)

type Picture struct {
	ID     int64
	Path   string
	IsMain bool
}

// Room is a bookable room type with a unit count. The nested booking,
// block and rate slices are pre-filtered by the store to the query window
// of the fetch that produced them.
type Room struct {
	ID          RoomID
	Name        string
	Description string
	PriceCents  int64
	MaxGuests   int
	Quantity    int
	Picture     string
	Bookings    []availability.Booking
	Blocks      []availability.Block
	Rates       []availability.SeasonRate
}

func (r Room) Terms() availability.RoomTerms {
	return availability.RoomTerms{Quantity: r.Quantity, MaxGuests: r.MaxGuests, PriceCents: r.PriceCents}
}

type Property struct {
	ID           PropertyID
	Name         string
	Description  string
	Location     string
	CityID       CityID
	CategoryID   CategoryID
	CategoryName string
	Tenant       TenantID
	Pictures     []Picture
	Rooms        []Room
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MainPicture returns the path of the first picture flagged as main, or nil.
func (p *Property) MainPicture() *string {
	for _, pic := range p.Pictures {
		if pic.IsMain {
			path := pic.Path
			return &path
		}
	}
	return nil
}

func (p *Property) RoomByID(id RoomID) (*Room, error) {
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			return &p.Rooms[i], nil
		}
	}
	return nil, ErrRoomNotFound
}

// Category is a lookup entity; Tenant == 0 marks it global.
type Category struct {
	ID     CategoryID
	Name   string
	Tenant TenantID
}

func (c Category) Global() bool { return c.Tenant == 0 }

type City struct {
	ID   CityID
	Name string
	Type string
}

type CreateParams struct {
	Name        string
	Description string
	Location    string
	CityID      CityID
	CategoryID  CategoryID
	Tenant      TenantID
	Now         time.Time
}

// New validates creation input. Category and city references are optional;
// when present they only need to be well-formed positive ids, existence is
// the store's concern.
func New(params CreateParams) (*Property, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if params.Tenant <= 0 {
		return nil, ErrTenantRequired
	}
	if params.CategoryID < 0 {
		return nil, ErrBadCategoryRef
	}
	if params.CityID < 0 {
		return nil, ErrBadCityRef
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Property{
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		Location:    strings.TrimSpace(params.Location),
		CityID:      params.CityID,
		CategoryID:  params.CategoryID,
		Tenant:      params.Tenant,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type RoomParams struct {
	Name        string
	Description string
	PriceCents  int64
	MaxGuests   int
	Quantity    int
	Picture     string
}

// AddRoom validates and appends a room type.
func (p *Property) AddRoom(params RoomParams, now time.Time) (*Room, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrRoomNameRequired
	}
	if params.PriceCents < 0 {
		return nil, ErrRoomPrice
	}
	if params.MaxGuests < 1 {
		return nil, ErrRoomGuests
	}
	if params.Quantity < 0 {
		return nil, ErrRoomQuantity
	}
	room := Room{
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		PriceCents:  params.PriceCents,
		MaxGuests:   params.MaxGuests,
		Quantity:    params.Quantity,
		Picture:     strings.TrimSpace(params.Picture),
	}
	p.Rooms = append(p.Rooms, room)
	p.UpdatedAt = now.UTC()
	return &p.Rooms[len(p.Rooms)-1], nil
}

// Repository is the injected store handle. Each fetch that carries a date
// window returns rooms whose bookings, blocks and rates are pre-filtered
// to that window with the half-open overlap test, canceled bookings
// excluded.
type Repository interface {
	Matching(ctx context.Context, params SearchParams) ([]*Property, error)
	ByID(ctx context.Context, id PropertyID, window daterange.DateRange) (*Property, error)
	ForCalendar(ctx context.Context, id PropertyID, year int, month time.Month) (*Property, error)
	Get(ctx context.Context, id PropertyID) (*Property, error)
	Owned(ctx context.Context, tenant TenantID, offset, limit int) ([]*Property, int, error)
	Insert(ctx context.Context, p *Property) error
	Save(ctx context.Context, p *Property) error
}

type CategoryRepository interface {
	Visible(ctx context.Context, tenant TenantID) ([]Category, error)
}

// BookingSink receives booking lifecycle facts from the external booking
// subsystem.
type BookingSink interface {
	RecordBooking(ctx context.Context, propertyID PropertyID, roomID RoomID, b availability.Booking) error
	CancelBooking(ctx context.Context, propertyID PropertyID, roomID RoomID, bookingID int64) error
}
