package properties

import (
	"context"
	"errors"
	"time"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/property"
)

const propertyCalendarKey = "properties.calendar"

var (
	ErrMonthInvalid = errors.New("properties: month must be between 1 and 12")
	ErrYearInvalid  = errors.New("properties: year is out of range")
)

type PropertyCalendarQuery struct {
	PropertyID int64
	Year       int
	Month      int
}

func (q PropertyCalendarQuery) Key() string { return propertyCalendarKey }

type PropertyCalendarHandler struct {
	Store property.Repository
}

func (h *PropertyCalendarHandler) Handle(ctx context.Context, q PropertyCalendarQuery) (dto.PropertyCalendar, error) {
	var zero dto.PropertyCalendar
	if q.PropertyID <= 0 {
		return zero, ErrPropertyIDInvalid
	}
	if q.Month < 1 || q.Month > 12 {
		return zero, ErrMonthInvalid
	}
	if q.Year < 1970 || q.Year > 2200 {
		return zero, ErrYearInvalid
	}

	found, err := h.Store.ForCalendar(ctx, property.PropertyID(q.PropertyID), q.Year, time.Month(q.Month))
	if err != nil {
		return zero, err
	}
	return dto.MapCalendar(found, q.Year, time.Month(q.Month)), nil
}
