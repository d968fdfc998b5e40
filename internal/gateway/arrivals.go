package gateway

import (
	"context"
	"net/http"
)

// Arrival is a central-warehouse medicine receipt.
type Arrival struct {
	ID            string    `json:"id"`
	MedicineID    string    `json:"medicine_id"`
	MedicineName  string    `json:"medicine_name"`
	Quantity      Quantity  `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	SellPrice     float64   `json:"sell_price"`
	Date          Timestamp `json:"date"`
}

// ArrivalForm is one line of a batch arrival request.
type ArrivalForm struct {
	MedicineID    string   `json:"medicine_id" validate:"required"`
	MedicineName  string   `json:"medicine_name,omitempty"`
	Quantity      int      `json:"quantity" validate:"gt=0"`
	PurchasePrice float64  `json:"purchase_price" validate:"gte=0"`
	SellPrice     *float64 `json:"sell_price,omitempty"`
}

type arrivalBatch struct {
	Arrivals []ArrivalForm `json:"arrivals" validate:"required,min=1,dive"`
}

// DeviceArrival is a central-warehouse device receipt.
type DeviceArrival struct {
	ID            string    `json:"id"`
	DeviceID      string    `json:"device_id"`
	DeviceName    string    `json:"device_name"`
	Quantity      Quantity  `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	SellPrice     float64   `json:"sell_price"`
	Date          Timestamp `json:"date"`
}

// DeviceArrivalForm is one line of a batch device arrival request.
type DeviceArrivalForm struct {
	DeviceID      string   `json:"device_id" validate:"required"`
	DeviceName    string   `json:"device_name,omitempty"`
	Quantity      int      `json:"quantity" validate:"gt=0"`
	PurchasePrice float64  `json:"purchase_price" validate:"gte=0"`
	SellPrice     *float64 `json:"sell_price,omitempty"`
}

type deviceArrivalBatch struct {
	Arrivals []DeviceArrivalForm `json:"arrivals" validate:"required,min=1,dive"`
}

// Arrivals lists medicine receipts. The endpoint is central-warehouse only.
func (g *Gateway) Arrivals(ctx context.Context) ([]Arrival, error) {
	var out []Arrival
	if err := g.list(ctx, "/arrivals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateArrivals posts a grouped batch wrapped as {"arrivals":[...]}, the
// exact shape the backend requires.
func (g *Gateway) CreateArrivals(ctx context.Context, arrivals []ArrivalForm) error {
	batch := arrivalBatch{Arrivals: arrivals}
	if err := g.check(batch); err != nil {
		return err
	}
	return g.hc.Do(ctx, http.MethodPost, "/arrivals", nil, batch, nil)
}

// DeviceArrivals lists device receipts.
func (g *Gateway) DeviceArrivals(ctx context.Context) ([]DeviceArrival, error) {
	var out []DeviceArrival
	if err := g.list(ctx, "/device_arrivals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDeviceArrivals posts a grouped batch of device receipts.
func (g *Gateway) CreateDeviceArrivals(ctx context.Context, arrivals []DeviceArrivalForm) error {
	batch := deviceArrivalBatch{Arrivals: arrivals}
	if err := g.check(batch); err != nil {
		return err
	}
	return g.hc.Do(ctx, http.MethodPost, "/device_arrivals", nil, batch, nil)
}
