package properties

import (
	"context"
	"sort"

	"stayseek/internal/app/dto"
	"stayseek/internal/domain/property"
)

const listCategoriesKey = "properties.categories"

// ListCategoriesQuery returns categories visible to a tenant: global ones
// always, plus the tenant's private ones when a tenant id is supplied.
type ListCategoriesQuery struct {
	Tenant int64
}

func (q ListCategoriesQuery) Key() string { return listCategoriesKey }

type ListCategoriesHandler struct {
	Categories property.CategoryRepository
}

func (h *ListCategoriesHandler) Handle(ctx context.Context, q ListCategoriesQuery) ([]dto.CategoryView, error) {
	tenant := property.TenantID(0)
	if q.Tenant > 0 {
		tenant = property.TenantID(q.Tenant)
	}
	categories, err := h.Categories.Visible(ctx, tenant)
	if err != nil {
		return nil, err
	}
	// Global categories first, then id ascending within each group.
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Global() != categories[j].Global() {
			return categories[i].Global()
		}
		return categories[i].ID < categories[j].ID
	})
	return dto.MapCategories(categories), nil
}
