package domain

import "time"

// EmployeeStatus enumerates workforce availability states.
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "Active"
	EmployeeStatusPTO        EmployeeStatus = "PTO"
	EmployeeStatusLeave      EmployeeStatus = "Leave"
	EmployeeStatusMilitary   EmployeeStatus = "Military"
	EmployeeStatusTerminated EmployeeStatus = "Terminated"
)

// Valid reports whether s is a known status.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusPTO, EmployeeStatusLeave, EmployeeStatusMilitary, EmployeeStatusTerminated:
		return true
	default:
		return false
	}
}

// Employee is a field worker that can be scheduled onto projects.
type Employee struct {
	ID             string
	Name           string
	Position       string
	Status         EmployeeStatus
	EmployeeNumber string
	HireDate       string
	Phone          string
	Email          string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
