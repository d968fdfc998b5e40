package gateway

import (
	"context"
	"net/http"
)

// Medicine mirrors a backend medicine record. A nil BranchID means central
// warehouse stock.
type Medicine struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CategoryID    string   `json:"category_id"`
	PurchasePrice float64  `json:"purchase_price"`
	SellPrice     float64  `json:"sell_price"`
	Quantity      Quantity `json:"quantity"`
	BranchID      *string  `json:"branch_id"`
}

// MedicineForm is the create/update payload for a medicine.
type MedicineForm struct {
	Name          string  `json:"name" validate:"required"`
	CategoryID    string  `json:"category_id" validate:"required"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
	SellPrice     float64 `json:"sell_price" validate:"gte=0"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	BranchID      *string `json:"branch_id,omitempty"`
}

// Medicines lists medicines, branch-scoped when branchID is non-empty.
func (g *Gateway) Medicines(ctx context.Context, branchID string) ([]Medicine, error) {
	var out []Medicine
	if err := g.list(ctx, "/medicines", branchScope(branchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMedicine registers a medicine.
func (g *Gateway) CreateMedicine(ctx context.Context, form MedicineForm) (Medicine, error) {
	if err := g.check(form); err != nil {
		return Medicine{}, err
	}
	var out Medicine
	if err := g.hc.Do(ctx, http.MethodPost, "/medicines", nil, form, &out); err != nil {
		return Medicine{}, err
	}
	return out, nil
}

// UpdateMedicine overwrites a medicine's fields.
func (g *Gateway) UpdateMedicine(ctx context.Context, id string, form MedicineForm) (Medicine, error) {
	if err := g.check(form); err != nil {
		return Medicine{}, err
	}
	var out Medicine
	if err := g.hc.Do(ctx, http.MethodPut, "/medicines/"+id, nil, form, &out); err != nil {
		return Medicine{}, err
	}
	return out, nil
}

// DeleteMedicine removes a medicine.
func (g *Gateway) DeleteMedicine(ctx context.Context, id string) error {
	return g.hc.Do(ctx, http.MethodDelete, "/medicines/"+id, nil, nil, nil)
}
