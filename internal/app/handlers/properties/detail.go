package properties

import (
	"context"
	"log/slog"
	"time"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/property"
	"stayseek/internal/domain/shared/daterange"
)

const propertyDetailKey = "properties.detail"

type PropertyDetailQuery struct {
	PropertyID int64
	Guests     int
	CheckIn    time.Time
	CheckOut   time.Time
}

func (q PropertyDetailQuery) Key() string { return propertyDetailKey }

// PropertyDetailHandler resolves a single property. A missing property
// surfaces property.ErrNotFound; a property with nothing bookable comes
// back with HasAvailableRooms false - the two are distinct outcomes.
type PropertyDetailHandler struct {
	Store  property.Repository
	Logger *slog.Logger
	Clock  func() time.Time
}

func (h *PropertyDetailHandler) Handle(ctx context.Context, q PropertyDetailQuery) (dto.PropertyDetail, error) {
	var zero dto.PropertyDetail
	if q.PropertyID <= 0 {
		return zero, ErrPropertyIDInvalid
	}
	if q.Guests < 0 {
		return zero, ErrGuestsInvalid
	}
	window, err := daterange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return zero, err
	}
	now := time.Now()
	if h.Clock != nil {
		now = h.Clock()
	}
	if err := window.ValidateNotPast(now); err != nil {
		return zero, err
	}

	guests := q.Guests
	if guests < 1 {
		guests = 1
	}
	found, err := h.Store.ByID(ctx, property.PropertyID(q.PropertyID), window)
	if err != nil {
		return zero, err
	}

	view, hasRooms := dto.MapProperty(found, window, guests)
	if h.Logger != nil && !hasRooms {
		h.Logger.Debug("property has no bookable rooms", "property", q.PropertyID, "guests", guests)
	}
	return dto.PropertyDetail{Property: view, HasAvailableRooms: hasRooms}, nil
}
