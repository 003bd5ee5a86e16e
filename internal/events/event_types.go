package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated   EventType = "employee.created"
	EventEmployeeUpdated   EventType = "employee.updated"
	EventProjectCreated    EventType = "project.created"
	EventProjectUpdated    EventType = "project.updated"
	EventAssignmentCreated EventType = "assignment.created"
	EventAssignmentDeleted EventType = "assignment.deleted"
	EventImportCompleted   EventType = "import.completed"
)

// AllTypes lists every event type, in declaration order.
var AllTypes = []EventType{
	EventEmployeeCreated,
	EventEmployeeUpdated,
	EventProjectCreated,
	EventProjectUpdated,
	EventAssignmentCreated,
	EventAssignmentDeleted,
	EventImportCompleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subject, actor string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AssignmentPayload describes a created or deleted assignment.
type AssignmentPayload struct {
	EmployeeID string `json:"employee_id"`
	ProjectID  string `json:"project_id"`
	Date       string `json:"assignment_date"`
}

// ImportPayload summarizes a spreadsheet import.
type ImportPayload struct {
	Filename           string `json:"filename"`
	Rows               int    `json:"rows"`
	AssignmentsCreated int    `json:"assignments_created"`
	Skipped            int    `json:"skipped"`
}
