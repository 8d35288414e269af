package domain

import "time"

// StatusOpen is the status assigned to every newly created ticket. Status is
// otherwise free text: any string an admin sets on update is stored as-is.
const StatusOpen = "Open"

// Ticket is a single support request. ID is the store-assigned internal
// identifier used for update targeting; TicketID is the public, human-shareable
// identifier used for tracking. Both are immutable after creation, as is
// CreatedAt. NotifiedAt records the last confirmed admin-notification delivery
// and stays nil until one succeeds.
type Ticket struct {
	ID           string
	TicketID     string
	EmployeeName string
	Department   string
	IssueType    string
	Description  string
	Status       string
	NotifiedAt   *time.Time
	CreatedAt    time.Time
}
