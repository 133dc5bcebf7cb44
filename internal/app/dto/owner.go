package dto

import (
	"time"

	"stayseek/internal/domain/property"
)

// OwnedRoom is the management view of a room: base terms only, no
// availability filtering.
type OwnedRoom struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	MaxGuests   int    `json:"max_guests"`
	Quantity    int    `json:"quantity"`
	Picture     string `json:"picture,omitempty"`
}

type PropertyPicture struct {
	ID     int64  `json:"id"`
	Path   string `json:"path"`
	IsMain bool   `json:"is_main"`
}

// OwnedProperty is what a tenant sees in their own listing overview.
type OwnedProperty struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Category    string            `json:"category"`
	CityID      int64             `json:"city_id,omitempty"`
	Pictures    []PropertyPicture `json:"pictures"`
	Rooms       []OwnedRoom       `json:"rooms"`
	RoomCount   int               `json:"room_count"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// MapOwnedProperty copies the full property for its owner, bookings and
// blocks notwithstanding.
func MapOwnedProperty(p *property.Property) OwnedProperty {
	out := OwnedProperty{
		ID:          int64(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Location:    p.Location,
		Category:    p.CategoryName,
		CityID:      int64(p.CityID),
		Pictures:    make([]PropertyPicture, 0, len(p.Pictures)),
		Rooms:       make([]OwnedRoom, 0, len(p.Rooms)),
		RoomCount:   len(p.Rooms),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, pic := range p.Pictures {
		out.Pictures = append(out.Pictures, PropertyPicture{ID: pic.ID, Path: pic.Path, IsMain: pic.IsMain})
	}
	for _, room := range p.Rooms {
		out.Rooms = append(out.Rooms, OwnedRoom{
			ID:          int64(room.ID),
			Name:        room.Name,
			Description: room.Description,
			PriceCents:  room.PriceCents,
			MaxGuests:   room.MaxGuests,
			Quantity:    room.Quantity,
			Picture:     room.Picture,
		})
	}
	return out
}

type CategoryView struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Global bool   `json:"global"`
}

func MapCategories(categories []property.Category) []CategoryView {
	out := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryView{ID: int64(c.ID), Name: c.Name, Global: c.Global()})
	}
	return out
}
