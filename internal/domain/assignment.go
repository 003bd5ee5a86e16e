package domain

import "time"

// Assignment schedules one employee onto one project for one day.
// EmployeeName and ProjectName are copied at creation and not kept in sync.
type Assignment struct {
	ID           int64
	EmployeeID   string
	EmployeeName string
	ProjectID    string
	ProjectName  string
	Date         string
	Notes        string
	CreatedAt    time.Time
}
