package gateway

import (
	"context"
	"net/http"
)

// Transfer is a single stock movement from the central warehouse to a branch.
type Transfer struct {
	ID           string    `json:"id"`
	MedicineID   string    `json:"medicine_id"`
	MedicineName string    `json:"medicine_name"`
	Quantity     Quantity  `json:"quantity"`
	FromBranchID string    `json:"from_branch_id"`
	ToBranchID   string    `json:"to_branch_id"`
	Date         Timestamp `json:"date"`
}

// TransferForm is one movement inside a batch transfer request.
type TransferForm struct {
	MedicineID   string `json:"medicine_id" validate:"required"`
	MedicineName string `json:"medicine_name" validate:"required"`
	Quantity     int    `json:"quantity" validate:"gt=0"`
	FromBranchID string `json:"from_branch_id,omitempty"`
	ToBranchID   string `json:"to_branch_id" validate:"required"`
}

type transferBatch struct {
	Transfers []TransferForm `json:"transfers" validate:"required,min=1,dive"`
}

// Transfers lists movements, scoped to the receiving branch when branchID is
// non-empty.
func (g *Gateway) Transfers(ctx context.Context, branchID string) ([]Transfer, error) {
	var out []Transfer
	if err := g.list(ctx, "/transfers", branchScope(branchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransfers submits a batch of movements. The backend applies the
// whole batch or none of it.
func (g *Gateway) CreateTransfers(ctx context.Context, transfers []TransferForm) error {
	batch := transferBatch{Transfers: transfers}
	if err := g.check(batch); err != nil {
		return err
	}
	return g.hc.Do(ctx, http.MethodPost, "/transfers", nil, batch, nil)
}
