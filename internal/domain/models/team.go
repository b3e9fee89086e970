package models

import "github.com/atsdairy/dashboard/internal/validation"

// TeamMember is one employee in team management.
type TeamMember struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Email      string `json:"email"`
	Shift      string `json:"shift"`
}

// Validate computes the team-management error map. Names on this screen are
// bounded at 15 characters.
func (t TeamMember) Validate() validation.Errors {
	return validation.Errors{
		"employeeId": validation.CodedID("Employee ID", t.EmployeeID),
		"name":       validation.CapitalizedText("Name", t.Name, 15),
		"role":       validation.Enum("Role", t.Role, TeamRoles),
		"email":      validation.StrictEmail("Email", t.Email),
		"shift":      validation.Enum("Shift", t.Shift, Shifts),
	}
}

// TeamMemberCSVHeader declares the export column order.
var TeamMemberCSVHeader = []string{"Employee ID", "Name", "Role", "Email", "Shift"}

// CSVRow renders the record in TeamMemberCSVHeader order.
func (t TeamMember) CSVRow() []string {
	return []string{t.EmployeeID, t.Name, t.Role, t.Email, t.Shift}
}

// Message is one buzzbox board entry.
type Message struct {
	ID       int    `json:"id"`
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Date     string `json:"date"`
	Priority string `json:"priority"`
}

// SetID stamps the assigned sequence id.
func (m *Message) SetID(id int) { m.ID = id }

// Validate computes the buzzbox error map. Subject and body are free form
// beyond being required.
func (m Message) Validate() validation.Errors {
	return validation.Errors{
		"sender":   validation.CapitalizedText("Sender", m.Sender, 0),
		"subject":  validation.Required("Subject", m.Subject),
		"body":     validation.Required("Body", m.Body),
		"date":     validation.Date("Date", m.Date),
		"priority": validation.Enum("Priority", m.Priority, MessagePriorities),
	}
}

// MessageCSVHeader declares the export column order.
var MessageCSVHeader = []string{"Sender", "Subject", "Body", "Date", "Priority"}

// CSVRow renders the record in MessageCSVHeader order.
func (m Message) CSVRow() []string {
	return []string{m.Sender, m.Subject, m.Body, m.Date, m.Priority}
}
