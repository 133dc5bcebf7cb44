package properties

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/availability"
	"stayseek/internal/domain/property"
	"stayseek/internal/domain/shared/daterange"
)

const (
	updatePropertyKey = "properties.update"
	addRoomKey        = "properties.rooms.add"
	blockRoomKey      = "properties.rooms.block"
	setSeasonRateKey  = "properties.rooms.rate"
	attachPictureKey  = "properties.pictures.attach"
)

var (
	ErrBlockRange   = errors.New("properties: block start must not be after its end")
	ErrRateRange    = errors.New("properties: rate start must not be after its end")
	ErrRatePrice    = errors.New("properties: rate price must be non-negative")
	ErrPicturePath  = errors.New("properties: picture path is required")
	ErrRoomRequired = errors.New("properties: room id must be a positive id")
)

// ManagePropertiesHandler serves the owner-facing mutations. Every
// operation loads the property, verifies ownership and saves it back; the
// store holds the single authoritative copy.
type ManagePropertiesHandler struct {
	Store  property.Repository
	Logger *slog.Logger
	Clock  func() time.Time
}

type UpdatePropertyCommand struct {
	Tenant      int64
	PropertyID  int64
	Name        string
	Description string
	Location    string
	CityID      int64
	CategoryID  int64
}

func (c UpdatePropertyCommand) Key() string { return updatePropertyKey }

func (h *ManagePropertiesHandler) HandleUpdate(ctx context.Context, cmd UpdatePropertyCommand) (dto.OwnedProperty, error) {
	var zero dto.OwnedProperty
	owned, err := h.owned(ctx, cmd.Tenant, cmd.PropertyID)
	if err != nil {
		return zero, err
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return zero, property.ErrNameRequired
	}
	if cmd.CategoryID < 0 {
		return zero, property.ErrBadCategoryRef
	}
	if cmd.CityID < 0 {
		return zero, property.ErrBadCityRef
	}
	owned.Name = strings.TrimSpace(cmd.Name)
	owned.Description = strings.TrimSpace(cmd.Description)
	owned.Location = strings.TrimSpace(cmd.Location)
	owned.CityID = property.CityID(cmd.CityID)
	owned.CategoryID = property.CategoryID(cmd.CategoryID)
	owned.UpdatedAt = h.now()
	if err := h.Store.Save(ctx, owned); err != nil {
		return zero, err
	}
	return dto.MapOwnedProperty(owned), nil
}

type AddRoomCommand struct {
	Tenant      int64
	PropertyID  int64
	Name        string
	Description string
	PriceCents  int64
	MaxGuests   int
	Quantity    int
	Picture     string
}

func (c AddRoomCommand) Key() string { return addRoomKey }

func (h *ManagePropertiesHandler) HandleAddRoom(ctx context.Context, cmd AddRoomCommand) (dto.OwnedProperty, error) {
	var zero dto.OwnedProperty
	owned, err := h.owned(ctx, cmd.Tenant, cmd.PropertyID)
	if err != nil {
		return zero, err
	}
	if _, err := owned.AddRoom(property.RoomParams{
		Name:        cmd.Name,
		Description: cmd.Description,
		PriceCents:  cmd.PriceCents,
		MaxGuests:   cmd.MaxGuests,
		Quantity:    cmd.Quantity,
		Picture:     cmd.Picture,
	}, h.now()); err != nil {
		return zero, err
	}
	if err := h.Store.Save(ctx, owned); err != nil {
		return zero, err
	}
	if h.Logger != nil {
		h.Logger.Info("room added", "property", owned.ID, "rooms", len(owned.Rooms))
	}
	return dto.MapOwnedProperty(owned), nil
}

type BlockRoomCommand struct {
	Tenant     int64
	PropertyID int64
	RoomID     int64
	Start      time.Time
	End        time.Time
	Reason     string
}

func (c BlockRoomCommand) Key() string { return blockRoomKey }

func (h *ManagePropertiesHandler) HandleBlock(ctx context.Context, cmd BlockRoomCommand) (dto.OwnedProperty, error) {
	var zero dto.OwnedProperty
	owned, room, err := h.ownedRoom(ctx, cmd.Tenant, cmd.PropertyID, cmd.RoomID)
	if err != nil {
		return zero, err
	}
	start, end := daterange.Day(cmd.Start), daterange.Day(cmd.End)
	if start.After(end) {
		return zero, ErrBlockRange
	}
	room.Blocks = append(room.Blocks, availability.Block{
		Start:  start,
		End:    end,
		Reason: strings.TrimSpace(cmd.Reason),
	})
	owned.UpdatedAt = h.now()
	if err := h.Store.Save(ctx, owned); err != nil {
		return zero, err
	}
	return dto.MapOwnedProperty(owned), nil
}

type SetSeasonRateCommand struct {
	Tenant     int64
	PropertyID int64
	RoomID     int64
	Start      time.Time
	End        time.Time
	PriceCents int64
}

func (c SetSeasonRateCommand) Key() string { return setSeasonRateKey }

func (h *ManagePropertiesHandler) HandleSeasonRate(ctx context.Context, cmd SetSeasonRateCommand) (dto.OwnedProperty, error) {
	var zero dto.OwnedProperty
	owned, room, err := h.ownedRoom(ctx, cmd.Tenant, cmd.PropertyID, cmd.RoomID)
	if err != nil {
		return zero, err
	}
	start, end := daterange.Day(cmd.Start), daterange.Day(cmd.End)
	if start.After(end) {
		return zero, ErrRateRange
	}
	if cmd.PriceCents < 0 {
		return zero, ErrRatePrice
	}
	room.Rates = append(room.Rates, availability.SeasonRate{
		Start:      start,
		End:        end,
		PriceCents: cmd.PriceCents,
	})
	owned.UpdatedAt = h.now()
	if err := h.Store.Save(ctx, owned); err != nil {
		return zero, err
	}
	return dto.MapOwnedProperty(owned), nil
}

type AttachPictureCommand struct {
	Tenant     int64
	PropertyID int64
	Path       string
	IsMain     bool
}

func (c AttachPictureCommand) Key() string { return attachPictureKey }

func (h *ManagePropertiesHandler) HandleAttachPicture(ctx context.Context, cmd AttachPictureCommand) (dto.OwnedProperty, error) {
	var zero dto.OwnedProperty
	owned, err := h.owned(ctx, cmd.Tenant, cmd.PropertyID)
	if err != nil {
		return zero, err
	}
	path := strings.TrimSpace(cmd.Path)
	if path == "" {
		return zero, ErrPicturePath
	}
	if cmd.IsMain {
		for i := range owned.Pictures {
			owned.Pictures[i].IsMain = false
		}
	}
	owned.Pictures = append(owned.Pictures, property.Picture{Path: path, IsMain: cmd.IsMain})
	owned.UpdatedAt = h.now()
	if err := h.Store.Save(ctx, owned); err != nil {
		return zero, err
	}
	return dto.MapOwnedProperty(owned), nil
}

func (h *ManagePropertiesHandler) owned(ctx context.Context, tenant, id int64) (*property.Property, error) {
	if tenant <= 0 {
		return nil, ErrTenantMissing
	}
	if id <= 0 {
		return nil, ErrPropertyIDInvalid
	}
	found, err := h.Store.Get(ctx, property.PropertyID(id))
	if err != nil {
		return nil, err
	}
	if found.Tenant != property.TenantID(tenant) {
		return nil, ErrNotOwned
	}
	return found, nil
}

func (h *ManagePropertiesHandler) ownedRoom(ctx context.Context, tenant, id, roomID int64) (*property.Property, *property.Room, error) {
	if roomID <= 0 {
		return nil, nil, ErrRoomRequired
	}
	owned, err := h.owned(ctx, tenant, id)
	if err != nil {
		return nil, nil, err
	}
	room, err := owned.RoomByID(property.RoomID(roomID))
	if err != nil {
		return nil, nil, err
	}
	return owned, room, nil
}

func (h *ManagePropertiesHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock().UTC()
	}
	return time.Now().UTC()
}
