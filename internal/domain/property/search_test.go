package property

import "testing"

func TestMatchesCategoryAsymmetry(t *testing.T) {
	cases := []struct {
		name     string
		tokens   []string
		category string
		want     bool
	}{
		{"no filter matches everything", nil, "Beach Villa", true},
		{"single token substring", []string{"Villa"}, "Beach villa deluxe", true},
		{"single token substring case-insensitive", []string{"villa"}, "VILLA", true},
		{"single token no substring", []string{"Hotel"}, "Beach Villa", false},
		{"multi token exact member", []string{"Villa", "Hotel"}, "hotel", true},
		{"multi token exact member case-insensitive", []string{"Villa", "Hotel"}, "VILLA", true},
		{"multi token rejects substring", []string{"Villa", "Hotel"}, "Beach Villa", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := SearchParams{Categories: tc.tokens}.Normalized()
			if got := params.MatchesCategory(tc.category); got != tc.want {
				t.Errorf("MatchesCategory(%q) with %v = %v, want %v", tc.category, tc.tokens, got, tc.want)
			}
		})
	}
}

func TestMatchesName(t *testing.T) {
	params := SearchParams{Name: "  SUNSET "}.Normalized()
	if !params.MatchesName("Villa Sunset Beach") {
		t.Error("trimmed lowercase substring must match")
	}
	if params.MatchesName("Villa Sunrise") {
		t.Error("non-substring must not match")
	}
	if !(SearchParams{}.Normalized()).MatchesName("anything") {
		t.Error("empty name filter must match everything")
	}
}

func TestNormalizedDropsEmptyTokensAndRaisesGuests(t *testing.T) {
	params := SearchParams{Categories: []string{" Villa ", "", "  "}, Guests: 0}.Normalized()
	if len(params.Categories) != 1 || params.Categories[0] != "Villa" {
		t.Errorf("Categories = %v, want [Villa]", params.Categories)
	}
	if params.Guests != 1 {
		t.Errorf("Guests = %d, want 1", params.Guests)
	}
}

func TestRoomVisible(t *testing.T) {
	cases := []struct {
		name   string
		room   Room
		guests int
		want   bool
	}{
		{"zero quantity", Room{Quantity: 0, MaxGuests: 4}, 2, false},
		{"capacity too small", Room{Quantity: 2, MaxGuests: 1}, 2, false},
		{"visible", Room{Quantity: 1, MaxGuests: 2}, 2, true},
	}
	for _, tc := range cases {
		if got := RoomVisible(tc.room, tc.guests); got != tc.want {
			t.Errorf("%s: RoomVisible = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHasVisibleRoom(t *testing.T) {
	p := &Property{Rooms: []Room{
		{Quantity: 0, MaxGuests: 6},
		{Quantity: 2, MaxGuests: 1},
	}}
	if p.HasVisibleRoom(2) {
		t.Error("property with no eligible rooms must report none")
	}
	p.Rooms = append(p.Rooms, Room{Quantity: 1, MaxGuests: 4})
	if !p.HasVisibleRoom(2) {
		t.Error("one eligible room is enough")
	}
}

func TestNewValidatesReferences(t *testing.T) {
	base := CreateParams{Name: "Casa Azul", Tenant: 7}
	if _, err := New(base); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	missingName := base
	missingName.Name = "   "
	if _, err := New(missingName); err != ErrNameRequired {
		t.Errorf("blank name: error = %v, want ErrNameRequired", err)
	}
	badCategory := base
	badCategory.CategoryID = -3
	if _, err := New(badCategory); err != ErrBadCategoryRef {
		t.Errorf("negative category: error = %v, want ErrBadCategoryRef", err)
	}
	badCity := base
	badCity.CityID = -1
	if _, err := New(badCity); err != ErrBadCityRef {
		t.Errorf("negative city: error = %v, want ErrBadCityRef", err)
	}
	noTenant := base
	noTenant.Tenant = 0
	if _, err := New(noTenant); err != ErrTenantRequired {
		t.Errorf("missing tenant: error = %v, want ErrTenantRequired", err)
	}
}
