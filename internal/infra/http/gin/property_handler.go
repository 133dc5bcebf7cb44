package ginserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayseek/internal/app/dto"
	propertyapp "stayseek/internal/app/handlers/properties"
	"stayseek/internal/app/queries"
)

// PropertyHandler wires guest-facing property queries to HTTP.
type PropertyHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

// Search responds with a paginated, availability-annotated property page.
func (h PropertyHandler) Search(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "property handler unavailable"})
		return
	}
	checkIn, checkOut := parseWindow(c.Query("check_in"), c.Query("check_out"))
	query := propertyapp.SearchPropertiesQuery{
		CityID:     parseID(c.Query("city_id")),
		Guests:     parseInt(c.Query("guests")),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Name:       c.Query("name"),
		Categories: splitCSV(c.Query("categories")),
		SortBy:     c.Query("sort_by"),
		Order:      c.Query("order"),
		Page:       parseIntWithDefault(c.Query("page"), 1),
	}
	result, err := queries.Ask[propertyapp.SearchPropertiesQuery, dto.Page[dto.ProcessedProperty]](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Detail responds with one property. Unknown ids are 404; a known
// property with nothing bookable is 200 with has_available_rooms false.
func (h PropertyHandler) Detail(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "property handler unavailable"})
		return
	}
	checkIn, checkOut := parseWindow(c.Query("check_in"), c.Query("check_out"))
	query := propertyapp.PropertyDetailQuery{
		PropertyID: parseID(c.Param("id")),
		Guests:     parseInt(c.Query("guests")),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
	result, err := queries.Ask[propertyapp.PropertyDetailQuery, dto.PropertyDetail](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Calendar expands one month of per-room availability.
func (h PropertyHandler) Calendar(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "property handler unavailable"})
		return
	}
	now := time.Now().UTC()
	query := propertyapp.PropertyCalendarQuery{
		PropertyID: parseID(c.Param("id")),
		Year:       parseIntWithDefault(c.Query("year"), now.Year()),
		Month:      parseIntWithDefault(c.Query("month"), int(now.Month())),
	}
	result, err := queries.Ask[propertyapp.PropertyCalendarQuery, dto.PropertyCalendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Categories lists the category lookup, global entries first. The tenant
// extension is applied when the caller is an authenticated tenant.
func (h PropertyHandler) Categories(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "property handler unavailable"})
		return
	}
	query := propertyapp.ListCategoriesQuery{}
	if p, ok := currentPrincipal(c); ok && p.IsTenant() {
		query.Tenant = p.ID
	}
	result, err := queries.Ask[propertyapp.ListCategoriesQuery, []dto.CategoryView](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": result})
}

var _ PropertyHTTP = PropertyHandler{}

// parseWindow accepts RFC3339 or plain dates; zero values are left for
// the application layer to reject.
func parseWindow(fromRaw, toRaw string) (time.Time, time.Time) {
	from, _ := parseFlexibleTime(fromRaw)
	to, _ := parseFlexibleTime(toRaw)
	return from, to
}

func parseFlexibleTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseID(raw string) int64 {
	value, _ := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return value
}

// parseInt keeps negative inputs so the application layer can reject them.
func parseInt(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	return value
}

func parseIntWithDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	return parseInt(raw)
}
