package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pharmadesk/pharmadesk/internal/pages"
	"github.com/pharmadesk/pharmadesk/internal/platform/httpc"
)

// ShipmentOps drives the shipment lifecycle from the terminal.
type ShipmentOps struct {
	page *pages.ShipmentsPage
	out  io.Writer
}

// NewShipmentOps wires the helper to a loaded shipments page.
func NewShipmentOps(page *pages.ShipmentsPage, out io.Writer) *ShipmentOps {
	return &ShipmentOps{page: page, out: out}
}

// List loads and prints shipments; pendingOnly narrows to actionable ones.
func (c *ShipmentOps) List(ctx context.Context, pendingOnly bool) error {
	if err := c.page.Load(ctx); err != nil {
		return err
	}
	if pendingOnly {
		return RenderShipments(c.out, c.page.Pending())
	}
	return RenderShipments(c.out, c.page.Shipments)
}

// Show opens a shipment detail.
func (c *ShipmentOps) Show(ctx context.Context, id string) error {
	if err := c.page.Load(ctx); err != nil {
		return err
	}
	if err := c.page.Select(id); err != nil {
		return err
	}
	detail, _ := c.page.Selected()
	return RenderShipmentDetail(c.out, detail)
}

// Accept requests the accepted status for one shipment. A conflict prints
// the already-resolved notice instead of failing the command.
func (c *ShipmentOps) Accept(ctx context.Context, id string) error {
	if err := c.page.Load(ctx); err != nil {
		return err
	}
	if err := c.page.Select(id); err != nil {
		return err
	}
	if err := c.page.Accept(ctx); err != nil {
		if httpc.IsConflict(err) {
			fmt.Fprintf(c.out, "shipment %s was already resolved by another actor; refresh to see its state\n", id)
			return nil
		}
		return err
	}
	fmt.Fprintf(c.out, "shipment %s accepted\n", id)
	return nil
}

// Reject requests the rejected status with a mandatory reason.
func (c *ShipmentOps) Reject(ctx context.Context, id, reason string) error {
	if err := c.page.Load(ctx); err != nil {
		return err
	}
	if err := c.page.Select(id); err != nil {
		return err
	}
	if err := c.page.Reject(ctx, reason); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "shipment %s rejected\n", id)
	return nil
}

// Cancel requests the cancelled status.
func (c *ShipmentOps) Cancel(ctx context.Context, id string) error {
	if err := c.page.Load(ctx); err != nil {
		return err
	}
	if err := c.page.Cancel(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "shipment %s cancelled\n", id)
	return nil
}

// Retry puts a resolved shipment back to pending.
func (c *ShipmentOps) Retry(ctx context.Context, id string) error {
	if err := c.page.Load(ctx); err != nil {
		return err
	}
	if err := c.page.Retry(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "shipment %s back to pending\n", id)
	return nil
}

// Friendly translates the page's sentinel errors for terminal users.
func Friendly(err error) string {
	switch {
	case errors.Is(err, pages.ErrBusy):
		return "another action for this shipment is still running"
	case errors.Is(err, pages.ErrStale):
		return "this shipment changed on the server; run the list command again"
	case errors.Is(err, pages.ErrNoSelection):
		return "select a shipment first"
	case httpc.IsTimeout(err):
		return "the backend did not answer in time"
	default:
		return err.Error()
	}
}
