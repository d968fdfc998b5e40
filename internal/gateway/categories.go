package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// Category types shared by the generic categories endpoint.
const (
	CategoryMedicine = "medicine"
	CategoryDevice   = "medical_device"
)

// Category classifies medicines or medical devices.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// CategoryForm is the create/update payload for a category.
type CategoryForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type" validate:"required,oneof=medicine medical_device"`
}

// Categories lists categories, optionally filtered by type.
func (g *Gateway) Categories(ctx context.Context, categoryType string) ([]Category, error) {
	var query url.Values
	if categoryType != "" {
		query = url.Values{}
		query.Set("type", categoryType)
	}
	var out []Category
	if err := g.list(ctx, "/categories", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MedicineCategories is the compatibility alias the old client kept for the
// retired /medicine-categories endpoint.
func (g *Gateway) MedicineCategories(ctx context.Context) ([]Category, error) {
	return g.Categories(ctx, CategoryMedicine)
}

// CreateCategory registers a category.
func (g *Gateway) CreateCategory(ctx context.Context, form CategoryForm) (Category, error) {
	if err := g.check(form); err != nil {
		return Category{}, err
	}
	var out Category
	if err := g.hc.Do(ctx, http.MethodPost, "/categories", nil, form, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// UpdateCategory overwrites a category's fields.
func (g *Gateway) UpdateCategory(ctx context.Context, id string, form CategoryForm) (Category, error) {
	if err := g.check(form); err != nil {
		return Category{}, err
	}
	var out Category
	if err := g.hc.Do(ctx, http.MethodPut, "/categories/"+id, nil, form, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// DeleteCategory removes a category. The backend refuses when items still
// reference it.
func (g *Gateway) DeleteCategory(ctx context.Context, id string) error {
	return g.hc.Do(ctx, http.MethodDelete, "/categories/"+id, nil, nil, nil)
}
