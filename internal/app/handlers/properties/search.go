package properties

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/property"
	"stayseek/internal/domain/shared/daterange"
)

const searchPropertiesKey = "properties.search"

var (
	ErrCityRequired      = errors.New("properties: city is required")
	ErrGuestsInvalid     = errors.New("properties: guests must not be negative")
	ErrPageInvalid       = errors.New("properties: page must be at least 1")
	ErrPropertyIDInvalid = errors.New("properties: property id must be a positive id")
	ErrTenantMissing     = errors.New("properties: tenant identity required")
	ErrNotOwned          = errors.New("properties: property not owned by tenant")
)

// SearchPropertiesQuery carries validated, typed search criteria.
type SearchPropertiesQuery struct {
	CityID     int64
	Guests     int
	CheckIn    time.Time
	CheckOut   time.Time
	Name       string
	Categories []string
	SortBy     string
	Order      string
	Page       int
}

func (q SearchPropertiesQuery) Key() string { return searchPropertiesKey }

// SearchPropertiesHandler is the aggregation pipeline: predicate to the
// store, per-room availability, property dropping, sort, paginate.
type SearchPropertiesHandler struct {
	Store  property.Repository
	Logger *slog.Logger
	Clock  func() time.Time
}

func (h *SearchPropertiesHandler) Handle(ctx context.Context, q SearchPropertiesQuery) (dto.Page[dto.ProcessedProperty], error) {
	var zero dto.Page[dto.ProcessedProperty]
	if q.CityID <= 0 {
		return zero, ErrCityRequired
	}
	if q.Guests < 0 {
		return zero, ErrGuestsInvalid
	}
	window, err := daterange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return zero, err
	}
	if err := window.ValidateNotPast(h.now()); err != nil {
		return zero, err
	}
	page := q.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return zero, ErrPageInvalid
	}

	params := property.SearchParams{
		City:       property.CityID(q.CityID),
		Guests:     q.Guests,
		Window:     window,
		Name:       q.Name,
		Categories: q.Categories,
	}.Normalized()

	candidates, err := h.Store.Matching(ctx, params)
	if err != nil {
		return zero, err
	}

	processed := make([]dto.ProcessedProperty, 0, len(candidates))
	for _, candidate := range candidates {
		if view, ok := dto.MapProperty(candidate, window, params.Guests); ok {
			processed = append(processed, view)
		}
	}
	dto.SortProperties(processed, sortKey(q.SortBy), sortOrder(q.Order))

	result, err := dto.Paginate(processed, page, dto.SearchPageSize)
	if err != nil {
		return zero, err
	}
	if h.Logger != nil {
		h.Logger.Debug("property search served",
			"city", q.CityID, "guests", params.Guests,
			"candidates", len(candidates), "matched", len(processed), "page", page)
	}
	return result, nil
}

// sortKey maps a request token onto a supported key; anything else keeps
// the input order.
func sortKey(raw string) dto.SortKey {
	switch dto.SortKey(raw) {
	case dto.SortByName, dto.SortByPrice:
		return dto.SortKey(raw)
	default:
		return ""
	}
}

func sortOrder(raw string) dto.SortOrder {
	if dto.SortOrder(raw) == dto.OrderDesc {
		return dto.OrderDesc
	}
	return dto.OrderAsc
}

func (h *SearchPropertiesHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}
