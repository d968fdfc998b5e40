package gateway

import (
	"context"
	"net/http"
)

// Branch is a satellite warehouse location.
type Branch struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
}

// BranchForm is the create/update payload for a branch. Creating a branch
// also provisions its login on the backend.
type BranchForm struct {
	Name     string `json:"name" validate:"required"`
	Login    string `json:"login" validate:"required"`
	Password string `json:"password,omitempty"`
}

// Branches lists every branch. The endpoint is not branch-scoped.
func (g *Gateway) Branches(ctx context.Context) ([]Branch, error) {
	var out []Branch
	if err := g.list(ctx, "/branches", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBranch registers a branch and its backing user.
func (g *Gateway) CreateBranch(ctx context.Context, form BranchForm) (Branch, error) {
	if err := g.check(form); err != nil {
		return Branch{}, err
	}
	var out Branch
	if err := g.hc.Do(ctx, http.MethodPost, "/branches", nil, form, &out); err != nil {
		return Branch{}, err
	}
	return out, nil
}

// UpdateBranch overwrites a branch's fields.
func (g *Gateway) UpdateBranch(ctx context.Context, id string, form BranchForm) (Branch, error) {
	if err := g.check(form); err != nil {
		return Branch{}, err
	}
	var out Branch
	if err := g.hc.Do(ctx, http.MethodPut, "/branches/"+id, nil, form, &out); err != nil {
		return Branch{}, err
	}
	return out, nil
}

// DeleteBranch removes a branch and its backing user.
func (g *Gateway) DeleteBranch(ctx context.Context, id string) error {
	return g.hc.Do(ctx, http.MethodDelete, "/branches/"+id, nil, nil, nil)
}

// LastReceipt reports the quantity and time of the last accepted shipment
// item of a given kind for a branch, or a zero value when none exists.
type LastReceipt struct {
	Quantity Quantity  `json:"quantity"`
	Time     Timestamp `json:"time"`
}

// LastMedicineReceipt looks up the most recent accepted medicine receipt.
func (g *Gateway) LastMedicineReceipt(ctx context.Context, branchID, medicineID string) (LastReceipt, error) {
	var out LastReceipt
	path := "/branches/" + branchID + "/items/medicine/" + medicineID + "/last_receipt"
	if err := g.hc.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return LastReceipt{}, err
	}
	return out, nil
}

// LastDeviceReceipt looks up the most recent accepted device receipt.
func (g *Gateway) LastDeviceReceipt(ctx context.Context, branchID, deviceID string) (LastReceipt, error) {
	var out LastReceipt
	path := "/branches/" + branchID + "/items/device/" + deviceID + "/last_receipt"
	if err := g.hc.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return LastReceipt{}, err
	}
	return out, nil
}
