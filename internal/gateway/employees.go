package gateway

import (
	"context"
	"net/http"
)

// Employee mirrors a backend employee record.
type Employee struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Position  string  `json:"position"`
	Phone     string  `json:"phone"`
	BranchID  *string `json:"branch_id"`
}

// EmployeeForm is the create/update payload for an employee.
type EmployeeForm struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Position  string  `json:"position,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	BranchID  *string `json:"branch_id,omitempty"`
}

// Employees lists employees, branch-scoped when branchID is non-empty.
func (g *Gateway) Employees(ctx context.Context, branchID string) ([]Employee, error) {
	var out []Employee
	if err := g.list(ctx, "/employees", branchScope(branchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEmployee registers an employee.
func (g *Gateway) CreateEmployee(ctx context.Context, form EmployeeForm) (Employee, error) {
	if err := g.check(form); err != nil {
		return Employee{}, err
	}
	var out Employee
	if err := g.hc.Do(ctx, http.MethodPost, "/employees", nil, form, &out); err != nil {
		return Employee{}, err
	}
	return out, nil
}

// UpdateEmployee overwrites an employee's fields.
func (g *Gateway) UpdateEmployee(ctx context.Context, id string, form EmployeeForm) (Employee, error) {
	if err := g.check(form); err != nil {
		return Employee{}, err
	}
	var out Employee
	if err := g.hc.Do(ctx, http.MethodPut, "/employees/"+id, nil, form, &out); err != nil {
		return Employee{}, err
	}
	return out, nil
}

// DeleteEmployee removes an employee.
func (g *Gateway) DeleteEmployee(ctx context.Context, id string) error {
	return g.hc.Do(ctx, http.MethodDelete, "/employees/"+id, nil, nil, nil)
}
