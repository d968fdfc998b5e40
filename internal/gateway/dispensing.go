package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DispensedItem is one line of a dispensing record as the backend reports
// it, keyed by display name only.
type DispensedItem struct {
	MedicineName string   `json:"medicine_name,omitempty"`
	DeviceName   string   `json:"device_name,omitempty"`
	Quantity     Quantity `json:"quantity"`
}

// DispensingRecord mirrors a backend dispensing record: one issuance of
// medicines/devices to a patient, decrementing branch stock.
type DispensingRecord struct {
	ID             string          `json:"id"`
	PatientID      string          `json:"patient_id"`
	PatientName    string          `json:"patient_name"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	BranchID       string          `json:"branch_id"`
	Date           Timestamp       `json:"date"`
	Medicines      []DispensedItem `json:"medicines"`
	MedicalDevices []DispensedItem `json:"medical_devices"`
}

// DispenseItemForm is one line of a dispensing request.
type DispenseItemForm struct {
	Type     string `json:"type" validate:"required,oneof=medicine medical_device"`
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// DispenseForm is the create payload for a dispensing record.
type DispenseForm struct {
	PatientID  string             `json:"patient_id" validate:"required"`
	EmployeeID string             `json:"employee_id" validate:"required"`
	BranchID   string             `json:"branch_id" validate:"required"`
	Items      []DispenseItemForm `json:"items" validate:"required,min=1,dive"`
}

// CalendarEntry is one dispensing shown on the calendar view.
type CalendarEntry struct {
	ID           string `json:"id"`
	PatientName  string `json:"patient_name"`
	EmployeeName string `json:"employee_name"`
	Time         string `json:"time"`
}

// DispensingRecords lists records, branch-scoped when branchID is non-empty.
func (g *Gateway) DispensingRecords(ctx context.Context, branchID string) ([]DispensingRecord, error) {
	var out []DispensingRecord
	if err := g.list(ctx, "/dispensing_records", branchScope(branchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDispensing records an issuance. The backend validates stock and
// applies the whole item list or none of it.
func (g *Gateway) CreateDispensing(ctx context.Context, form DispenseForm) error {
	if err := g.check(form); err != nil {
		return err
	}
	return g.hc.Do(ctx, http.MethodPost, "/dispensing", nil, form, nil)
}

// DispensingCalendar returns records grouped by day of month. Month and year
// filter together; zero values request the full history.
func (g *Gateway) DispensingCalendar(ctx context.Context, branchID string, month, year int) (map[string][]CalendarEntry, error) {
	query := branchScope(branchID)
	if month > 0 && year > 0 {
		if query == nil {
			query = url.Values{}
		}
		query.Set("month", strconv.Itoa(month))
		query.Set("year", strconv.Itoa(year))
	}
	out := map[string][]CalendarEntry{}
	if err := g.list(ctx, "/calendar/dispensing", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
