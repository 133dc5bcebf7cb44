package properties

import (
	"context"
	"log/slog"
	"time"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/property"
)

const createPropertyKey = "properties.create"

// CreatePropertyCommand inserts a property for its owning tenant.
// Category and city references are optional; they are only checked for
// being well-formed positive ids, existence is left to the store.
type CreatePropertyCommand struct {
	Tenant      int64
	Name        string
	Description string
	Location    string
	CityID      int64
	CategoryID  int64
}

func (c CreatePropertyCommand) Key() string { return createPropertyKey }

type CreatePropertyHandler struct {
	Store  property.Repository
	Logger *slog.Logger
	Clock  func() time.Time
}

func (h *CreatePropertyHandler) Handle(ctx context.Context, cmd CreatePropertyCommand) (dto.OwnedProperty, error) {
	var zero dto.OwnedProperty
	if cmd.Tenant <= 0 {
		return zero, ErrTenantMissing
	}
	now := time.Now()
	if h.Clock != nil {
		now = h.Clock()
	}
	created, err := property.New(property.CreateParams{
		Name:        cmd.Name,
		Description: cmd.Description,
		Location:    cmd.Location,
		CityID:      property.CityID(cmd.CityID),
		CategoryID:  property.CategoryID(cmd.CategoryID),
		Tenant:      property.TenantID(cmd.Tenant),
		Now:         now,
	})
	if err != nil {
		return zero, err
	}
	if err := h.Store.Insert(ctx, created); err != nil {
		return zero, err
	}
	if h.Logger != nil {
		h.Logger.Info("property created", "property", created.ID, "tenant", cmd.Tenant)
	}
	return dto.MapOwnedProperty(created), nil
}
