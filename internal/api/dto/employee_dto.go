package dto

import (
	"time"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/service"
)

// EmployeeCreateRequest payload. employee_id is synthesized when omitted.
type EmployeeCreateRequest struct {
	EmployeeID     string `json:"employee_id"`
	Name           string `json:"name"`
	Position       string `json:"position"`
	Status         string `json:"status"`
	EmployeeNumber string `json:"employee_number"`
	HireDate       string `json:"hire_date"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Notes          string `json:"notes"`
}

// Input converts the payload for the service.
func (r EmployeeCreateRequest) Input() service.EmployeeInput {
	return service.EmployeeInput{
		ID:             r.EmployeeID,
		Name:           r.Name,
		Position:       r.Position,
		Status:         r.Status,
		EmployeeNumber: r.EmployeeNumber,
		HireDate:       r.HireDate,
		Phone:          r.Phone,
		Email:          r.Email,
		Notes:          r.Notes,
	}
}

// EmployeeUpdateRequest payload; absent fields are left unchanged.
type EmployeeUpdateRequest struct {
	Name           *string `json:"name"`
	Position       *string `json:"position"`
	Status         *string `json:"status"`
	EmployeeNumber *string `json:"employee_number"`
	HireDate       *string `json:"hire_date"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Notes          *string `json:"notes"`
}

// Update converts the payload for the service.
func (r EmployeeUpdateRequest) Update() service.EmployeeUpdate {
	return service.EmployeeUpdate{
		Name:           r.Name,
		Position:       r.Position,
		Status:         r.Status,
		EmployeeNumber: r.EmployeeNumber,
		HireDate:       r.HireDate,
		Phone:          r.Phone,
		Email:          r.Email,
		Notes:          r.Notes,
	}
}

// EmployeeResponse is the wire form of an employee.
type EmployeeResponse struct {
	EmployeeID     string    `json:"employee_id"`
	Name           string    `json:"name"`
	Position       string    `json:"position"`
	Status         string    `json:"status"`
	EmployeeNumber string    `json:"employee_number"`
	HireDate       string    `json:"hire_date"`
	Phone          *string   `json:"phone"`
	Email          *string   `json:"email"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:     e.ID,
		Name:           e.Name,
		Position:       e.Position,
		Status:         string(e.Status),
		EmployeeNumber: e.EmployeeNumber,
		HireDate:       e.HireDate,
		Phone:          optional(e.Phone),
		Email:          optional(e.Email),
		Notes:          optional(e.Notes),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// NewEmployeeList maps a slice of employees.
func NewEmployeeList(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, NewEmployeeResponse(&employees[i]))
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
