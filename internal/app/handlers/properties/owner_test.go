package properties

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/property"
	"stayseek/internal/infra/storage/memory"
)

func TestListCategoriesOrderingAndVisibility(t *testing.T) {
	repo := memory.NewPropertyRepository()
	repo.SeedCategory(property.Category{ID: 5, Name: "Cabin", Tenant: 7})
	repo.SeedCategory(property.Category{ID: 2, Name: "Villa"})
	repo.SeedCategory(property.Category{ID: 1, Name: "Hotel"})
	repo.SeedCategory(property.Category{ID: 3, Name: "Secret", Tenant: 9})

	h := &ListCategoriesHandler{Categories: repo}
	got, err := h.Handle(context.Background(), ListCategoriesQuery{Tenant: 7})
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		id     int64
		global bool
	}{{1, true}, {2, true}, {5, false}}
	if len(got) != len(want) {
		t.Fatalf("categories = %d, want %d (globals plus own)", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].Global != w.global {
			t.Errorf("position %d = %+v, want id %d global %v", i, got[i], w.id, w.global)
		}
	}

	anonymous, err := h.Handle(context.Background(), ListCategoriesQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(anonymous) != 2 {
		t.Errorf("without tenant only globals are visible, got %d", len(anonymous))
	}
}

func TestListOwnedNewestFirstIgnoringAvailability(t *testing.T) {
	repo := memory.NewPropertyRepository()
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		p := &property.Property{
			Name:      "Casa",
			CityID:    1,
			Tenant:    7,
			CreatedAt: date(2026, 1, 1).Add(time.Duration(i) * 24 * time.Hour),
			Rooms:     []property.Room{{Name: "Room", Quantity: 0, MaxGuests: 2, PriceCents: 1000}},
		}
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	h := &ListOwnedHandler{Store: repo}
	first, err := h.Handle(ctx, ListOwnedQuery{Tenant: 7, Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if first.Pagination.TotalItems != 7 || first.Pagination.TotalPages != 2 || len(first.Data) != 5 {
		t.Fatalf("pagination = %+v with %d rows", first.Pagination, len(first.Data))
	}
	if !first.Data[0].CreatedAt.After(first.Data[4].CreatedAt) {
		t.Error("owned listing must be newest-created-first")
	}
	if first.Data[0].RoomCount != 1 {
		t.Error("rooms with zero quantity still appear in the owner view")
	}

	if _, err := h.Handle(ctx, ListOwnedQuery{Tenant: 7, Page: 3}); !errors.Is(err, dto.ErrPageOutOfRange) {
		t.Errorf("page 3 of 2: error = %v, want ErrPageOutOfRange", err)
	}
	if _, err := h.Handle(ctx, ListOwnedQuery{Page: 1}); !errors.Is(err, ErrTenantMissing) {
		t.Errorf("missing tenant: error = %v, want ErrTenantMissing", err)
	}

	empty, err := h.Handle(ctx, ListOwnedQuery{Tenant: 55, Page: 4})
	if err != nil {
		t.Fatalf("tenant without properties must get an empty page: %v", err)
	}
	if empty.Pagination.TotalItems != 0 {
		t.Errorf("total = %d, want 0", empty.Pagination.TotalItems)
	}
}

func TestCreateProperty(t *testing.T) {
	repo := memory.NewPropertyRepository()
	h := &CreatePropertyHandler{Store: repo, Clock: fixedClock}
	ctx := context.Background()

	created, err := h.Handle(ctx, CreatePropertyCommand{
		Tenant: 7, Name: "  Casa Nueva  ", Location: "Centro", CityID: 3, CategoryID: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 || created.Name != "Casa Nueva" {
		t.Errorf("created = %+v", created)
	}

	if _, err := h.Handle(ctx, CreatePropertyCommand{Name: "X"}); !errors.Is(err, ErrTenantMissing) {
		t.Errorf("missing tenant: error = %v, want ErrTenantMissing", err)
	}
	if _, err := h.Handle(ctx, CreatePropertyCommand{Tenant: 7, Name: "X", CategoryID: -1}); !errors.Is(err, property.ErrBadCategoryRef) {
		t.Errorf("negative category ref: error = %v, want ErrBadCategoryRef", err)
	}
	// References are not existence-checked by the core.
	if _, err := h.Handle(ctx, CreatePropertyCommand{Tenant: 7, Name: "Y", CategoryID: 424242}); err != nil {
		t.Errorf("unknown but well-formed category ref must pass: %v", err)
	}
}

func TestManageOwnershipAndMutations(t *testing.T) {
	repo := memory.NewPropertyRepository()
	ctx := context.Background()
	p := &property.Property{Name: "Casa", CityID: 1, Tenant: 7, CreatedAt: date(2026, 1, 1)}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatal(err)
	}
	h := &ManagePropertiesHandler{Store: repo, Clock: fixedClock}

	if _, err := h.HandleAddRoom(ctx, AddRoomCommand{Tenant: 8, PropertyID: int64(p.ID), Name: "Room", PriceCents: 100, MaxGuests: 2, Quantity: 1}); !errors.Is(err, ErrNotOwned) {
		t.Errorf("foreign tenant: error = %v, want ErrNotOwned", err)
	}

	withRoom, err := h.HandleAddRoom(ctx, AddRoomCommand{Tenant: 7, PropertyID: int64(p.ID), Name: "Double", PriceCents: 9000, MaxGuests: 2, Quantity: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(withRoom.Rooms) != 1 || withRoom.Rooms[0].ID == 0 {
		t.Fatalf("room not persisted: %+v", withRoom.Rooms)
	}
	roomID := withRoom.Rooms[0].ID

	if _, err := h.HandleBlock(ctx, BlockRoomCommand{Tenant: 7, PropertyID: int64(p.ID), RoomID: roomID, Start: date(2026, 9, 10), End: date(2026, 9, 5)}); !errors.Is(err, ErrBlockRange) {
		t.Errorf("inverted block: error = %v, want ErrBlockRange", err)
	}
	if _, err := h.HandleBlock(ctx, BlockRoomCommand{Tenant: 7, PropertyID: int64(p.ID), RoomID: roomID, Start: date(2026, 9, 5), End: date(2026, 9, 10), Reason: "painting"}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.HandleSeasonRate(ctx, SetSeasonRateCommand{Tenant: 7, PropertyID: int64(p.ID), RoomID: roomID, Start: date(2026, 12, 20), End: date(2027, 1, 5), PriceCents: 15000}); err != nil {
		t.Fatal(err)
	}

	updated, err := h.HandleAttachPicture(ctx, AttachPictureCommand{Tenant: 7, PropertyID: int64(p.ID), Path: "pics/a.jpg", IsMain: true})
	if err != nil {
		t.Fatal(err)
	}
	updated, err = h.HandleAttachPicture(ctx, AttachPictureCommand{Tenant: 7, PropertyID: int64(p.ID), Path: "pics/b.jpg", IsMain: true})
	if err != nil {
		t.Fatal(err)
	}
	mains := 0
	for _, pic := range updated.Pictures {
		if pic.IsMain {
			mains++
			if pic.Path != "pics/b.jpg" {
				t.Errorf("main picture = %s, want the newest main", pic.Path)
			}
		}
	}
	if mains != 1 {
		t.Errorf("main pictures = %d, want exactly 1", mains)
	}

	stored, err := repo.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	room := stored.Rooms[0]
	if len(room.Blocks) != 1 || len(room.Rates) != 1 {
		t.Errorf("blocks/rates = %d/%d, want 1/1", len(room.Blocks), len(room.Rates))
	}
}
