package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Shipment statuses. The set is server-defined and closed; clients must
// treat anything else as display-only.
const (
	ShipmentPending   = "pending"
	ShipmentAccepted  = "accepted"
	ShipmentRejected  = "rejected"
	ShipmentCancelled = "cancelled"
)

// ShipmentItem is one line of a shipment. Type is "medicine" or
// "medical_device".
type ShipmentItem struct {
	Type     string   `json:"type"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
}

// Shipment mirrors a backend shipment record. Status transitions are
// server-authoritative: the client requests a transition and trusts the
// response, never computing the next state itself.
type Shipment struct {
	ID              string         `json:"id"`
	ToBranchID      string         `json:"to_branch_id"`
	Status          string         `json:"status"`
	RejectionReason string         `json:"rejection_reason"`
	CreatedAt       Timestamp      `json:"created_at"`
	AcceptedAt      *Timestamp     `json:"accepted_at"`
	Items           []ShipmentItem `json:"items"`
}

// ShipmentItemForm is one line of a shipment create request.
type ShipmentItemForm struct {
	Type     string `json:"type" validate:"required,oneof=medicine medical_device"`
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// ShipmentForm is the create payload for a shipment.
type ShipmentForm struct {
	ToBranchID string             `json:"to_branch_id" validate:"required"`
	Items      []ShipmentItemForm `json:"items" validate:"required,min=1,dive"`
}

// Shipments lists shipments, scoped to the receiving branch when branchID is
// non-empty.
func (g *Gateway) Shipments(ctx context.Context, branchID string) ([]Shipment, error) {
	var out []Shipment
	if err := g.list(ctx, "/shipments", branchScope(branchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateShipment opens a pending shipment towards a branch.
func (g *Gateway) CreateShipment(ctx context.Context, form ShipmentForm) (Shipment, error) {
	if err := g.check(form); err != nil {
		return Shipment{}, err
	}
	var out Shipment
	if err := g.hc.Do(ctx, http.MethodPost, "/shipments", nil, form, &out); err != nil {
		return Shipment{}, err
	}
	return out, nil
}

// AcceptShipment requests the pending→accepted transition. The backend
// answers 409 when another actor already resolved the shipment.
func (g *Gateway) AcceptShipment(ctx context.Context, id string) (Shipment, error) {
	var out Shipment
	if err := g.hc.Do(ctx, http.MethodPost, "/shipments/"+id+"/accept", nil, nil, &out); err != nil {
		return Shipment{}, err
	}
	return out, nil
}

// RejectShipment requests the pending→rejected transition. An empty trimmed
// reason is rejected locally; no network call is made.
func (g *Gateway) RejectShipment(ctx context.Context, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	body := map[string]string{"reason": reason}
	return g.hc.Do(ctx, http.MethodPost, "/shipments/"+id+"/reject", nil, body, nil)
}

// CancelShipment requests the cancelled status.
func (g *Gateway) CancelShipment(ctx context.Context, id string) error {
	return g.setShipmentStatus(ctx, id, ShipmentCancelled)
}

// RetryShipment puts a resolved shipment back to pending.
func (g *Gateway) RetryShipment(ctx context.Context, id string) error {
	return g.setShipmentStatus(ctx, id, ShipmentPending)
}

func (g *Gateway) setShipmentStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return g.hc.Do(ctx, http.MethodPut, "/shipments/"+id+"/status", nil, body, nil)
}
