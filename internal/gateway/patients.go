package gateway

import (
	"context"
	"net/http"
)

// Patient mirrors a backend patient record.
type Patient struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Illness   string  `json:"illness"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	BranchID  *string `json:"branch_id"`
}

// PatientForm is the create/update payload for a patient.
type PatientForm struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Illness   string  `json:"illness,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Address   string  `json:"address,omitempty"`
	BranchID  *string `json:"branch_id,omitempty"`
}

// Patients lists patients, branch-scoped when branchID is non-empty.
func (g *Gateway) Patients(ctx context.Context, branchID string) ([]Patient, error) {
	var out []Patient
	if err := g.list(ctx, "/patients", branchScope(branchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePatient registers a patient.
func (g *Gateway) CreatePatient(ctx context.Context, form PatientForm) (Patient, error) {
	if err := g.check(form); err != nil {
		return Patient{}, err
	}
	var out Patient
	if err := g.hc.Do(ctx, http.MethodPost, "/patients", nil, form, &out); err != nil {
		return Patient{}, err
	}
	return out, nil
}

// UpdatePatient overwrites a patient's fields.
func (g *Gateway) UpdatePatient(ctx context.Context, id string, form PatientForm) (Patient, error) {
	if err := g.check(form); err != nil {
		return Patient{}, err
	}
	var out Patient
	if err := g.hc.Do(ctx, http.MethodPut, "/patients/"+id, nil, form, &out); err != nil {
		return Patient{}, err
	}
	return out, nil
}

// DeletePatient removes a patient.
func (g *Gateway) DeletePatient(ctx context.Context, id string) error {
	return g.hc.Do(ctx, http.MethodDelete, "/patients/"+id, nil, nil, nil)
}
