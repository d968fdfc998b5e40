package gateway

import (
	"context"
	"net/http"
)

// MedicalDevice mirrors a backend medical device record. A nil BranchID
// means central warehouse stock.
type MedicalDevice struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CategoryID    string   `json:"category_id"`
	PurchasePrice float64  `json:"purchase_price"`
	SellPrice     float64  `json:"sell_price"`
	Quantity      Quantity `json:"quantity"`
	BranchID      *string  `json:"branch_id"`
}

// MedicalDeviceForm is the create/update payload for a medical device.
type MedicalDeviceForm struct {
	Name          string  `json:"name" validate:"required"`
	CategoryID    string  `json:"category_id" validate:"required"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
	SellPrice     float64 `json:"sell_price" validate:"gte=0"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	BranchID      *string `json:"branch_id,omitempty"`
}

// MedicalDevices lists devices, branch-scoped when branchID is non-empty.
func (g *Gateway) MedicalDevices(ctx context.Context, branchID string) ([]MedicalDevice, error) {
	var out []MedicalDevice
	if err := g.list(ctx, "/medical_devices", branchScope(branchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMedicalDevice registers a device.
func (g *Gateway) CreateMedicalDevice(ctx context.Context, form MedicalDeviceForm) (MedicalDevice, error) {
	if err := g.check(form); err != nil {
		return MedicalDevice{}, err
	}
	var out MedicalDevice
	if err := g.hc.Do(ctx, http.MethodPost, "/medical_devices", nil, form, &out); err != nil {
		return MedicalDevice{}, err
	}
	return out, nil
}

// UpdateMedicalDevice overwrites a device's fields.
func (g *Gateway) UpdateMedicalDevice(ctx context.Context, id string, form MedicalDeviceForm) (MedicalDevice, error) {
	if err := g.check(form); err != nil {
		return MedicalDevice{}, err
	}
	var out MedicalDevice
	if err := g.hc.Do(ctx, http.MethodPut, "/medical_devices/"+id, nil, form, &out); err != nil {
		return MedicalDevice{}, err
	}
	return out, nil
}

// DeleteMedicalDevice removes a device.
func (g *Gateway) DeleteMedicalDevice(ctx context.Context, id string) error {
	return g.hc.Do(ctx, http.MethodDelete, "/medical_devices/"+id, nil, nil, nil)
}
