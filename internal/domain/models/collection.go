package models

import "github.com/atsdairy/dashboard/internal/validation"

// Record fields hold the raw form values; validators run against exactly
// what was typed, so numeric fields stay strings until an aggregate needs
// them as numbers.

// Farmer is one registered supplier on the farmers portal.
type Farmer struct {
	ID          int    `json:"id"`
	FarmerID    string `json:"farmerId"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	CattleCount string `json:"cattleCount"`
	JoinDate    string `json:"joinDate"`
}

// SetID stamps the assigned sequence id.
func (f *Farmer) SetID(id int) { f.ID = id }

// Validate computes the portal's error map for the farmer form.
func (f Farmer) Validate() validation.Errors {
	return validation.Errors{
		"farmerId":    validation.CodedID("Farmer ID", f.FarmerID),
		"name":        validation.CapitalizedText("Name", f.Name, 0),
		"location":    validation.CapitalizedText("Location", f.Location, 0),
		"email":       validation.StrictEmail("Email", f.Email),
		"cattleCount": validation.Number("Cattle count", f.CattleCount, 0, 999, true),
		"joinDate":    validation.Date("Join date", f.JoinDate),
	}
}

// FarmerCSVHeader declares the export column order.
var FarmerCSVHeader = []string{"Farmer ID", "Name", "Location", "Email", "Cattle Count", "Join Date"}

// CSVRow renders the record in FarmerCSVHeader order.
func (f Farmer) CSVRow() []string {
	return []string{f.FarmerID, f.Name, f.Location, f.Email, f.CattleCount, f.JoinDate}
}

// MilkEntry is one collection record in the milking zone.
type MilkEntry struct {
	ID       int    `json:"id"`
	FarmerID string `json:"farmerId"`
	Date     string `json:"date"`
	Quantity string `json:"quantity"`
	Shift    string `json:"shift"`
}

// SetID stamps the assigned sequence id.
func (m *MilkEntry) SetID(id int) { m.ID = id }

// Validate computes the milking-zone error map.
func (m MilkEntry) Validate() validation.Errors {
	return validation.Errors{
		"farmerId": validation.CodedID("Farmer ID", m.FarmerID),
		"date":     validation.Date("Date", m.Date),
		"quantity": validation.Number("Quantity", m.Quantity, 0, 999, true),
		"shift":    validation.Enum("Shift", m.Shift, Shifts),
	}
}

// MilkEntryCSVHeader declares the export column order.
var MilkEntryCSVHeader = []string{"Farmer ID", "Date", "Quantity", "Shift"}

// CSVRow renders the record in MilkEntryCSVHeader order.
func (m MilkEntry) CSVRow() []string {
	return []string{m.FarmerID, m.Date, m.Quantity, m.Shift}
}
