package property

import (
	"strings"

	"stayseek/internal/domain/shared/daterange"
)

// SearchParams describe guest-facing search criteria. City, window and
// guest count are mandatory and validated by the caller; name and category
// filters are optional.
type SearchParams struct {
	City       CityID
	Guests     int
	Window     daterange.DateRange
	Name       string
	Categories []string
}

// Normalized returns a sanitized copy: name lowered and trimmed, category
// tokens trimmed with empties dropped, guest count raised to at least 1.
func (p SearchParams) Normalized() SearchParams {
	normalized := p
	normalized.Name = strings.TrimSpace(strings.ToLower(normalized.Name))
	normalized.Categories = normalizeTokens(normalized.Categories)
	if normalized.Guests < 1 {
		normalized.Guests = 1
	}
	return normalized
}

func normalizeTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		out = append(out, token)
	}
	return out
}

// MatchesName applies the optional case-insensitive substring filter.
func (p SearchParams) MatchesName(propertyName string) bool {
	if p.Name == "" {
		return true
	}
	return strings.Contains(strings.ToLower(propertyName), strings.ToLower(p.Name))
}

// MatchesCategory applies the category filter. A single token matches by
// case-insensitive substring; multiple tokens match by case-insensitive
// exact membership. The asymmetry keeps a lone term forgiving and a list
// unambiguous.
func (p SearchParams) MatchesCategory(categoryName string) bool {
	tokens := p.Categories
	switch len(tokens) {
	case 0:
		return true
	case 1:
		return strings.Contains(strings.ToLower(categoryName), strings.ToLower(tokens[0]))
	default:
		for _, token := range tokens {
			if strings.EqualFold(categoryName, token) {
				return true
			}
		}
		return false
	}
}

// RoomVisible is the room-level listing gate: at least one unit and enough
// guest capacity. Date conflicts never unlist a room here.
func RoomVisible(room Room, guests int) bool {
	return room.Quantity > 0 && room.MaxGuests >= guests
}

// HasVisibleRoom reports whether any room passes the listing gate; a
// property with none is dropped from search results entirely.
func (p *Property) HasVisibleRoom(guests int) bool {
	for _, room := range p.Rooms {
		if RoomVisible(room, guests) {
			return true
		}
	}
	return false
}
