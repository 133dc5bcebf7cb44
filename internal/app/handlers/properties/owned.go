package properties

import (
	"context"
	"log/slog"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/property"
)

const listOwnedKey = "properties.owned"

// ListOwnedQuery pages through a tenant's own properties, newest first,
// with no availability filtering.
type ListOwnedQuery struct {
	Tenant int64
	Page   int
}

func (q ListOwnedQuery) Key() string { return listOwnedKey }

type ListOwnedHandler struct {
	Store  property.Repository
	Logger *slog.Logger
}

func (h *ListOwnedHandler) Handle(ctx context.Context, q ListOwnedQuery) (dto.Page[dto.OwnedProperty], error) {
	var zero dto.Page[dto.OwnedProperty]
	if q.Tenant <= 0 {
		return zero, ErrTenantMissing
	}
	page := q.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return zero, ErrPageInvalid
	}

	items, total, err := h.Store.Owned(ctx, property.TenantID(q.Tenant), (page-1)*dto.SearchPageSize, dto.SearchPageSize)
	if err != nil {
		return zero, err
	}
	meta, err := dto.PageMeta(total, page, dto.SearchPageSize)
	if err != nil {
		return zero, err
	}

	data := make([]dto.OwnedProperty, 0, len(items))
	for _, item := range items {
		data = append(data, dto.MapOwnedProperty(item))
	}
	if h.Logger != nil {
		h.Logger.Debug("owned properties listed", "tenant", q.Tenant, "page", page, "total", total)
	}
	return dto.Page[dto.OwnedProperty]{Data: data, Pagination: meta}, nil
}
