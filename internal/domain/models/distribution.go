package models

import "github.com/atsdairy/dashboard/internal/validation"

// Route is one delivery route in the distribution network.
type Route struct {
	RouteID string `json:"routeId"`
	Zone    string `json:"zone"`
	Driver  string `json:"driver"`
	Day     string `json:"day"`
	Status  string `json:"status"`
}

// Validate computes the distribution-network error map. Routes are keyed by
// their coded RouteID, no sequence id.
func (r Route) Validate() validation.Errors {
	return validation.Errors{
		"routeId": validation.CodedID("Route ID", r.RouteID),
		"zone":    validation.CapitalizedText("Zone", r.Zone, 0),
		"driver":  validation.CapitalizedText("Driver", r.Driver, 0),
		"day":     validation.Enum("Day", r.Day, Weekdays),
		"status":  validation.Enum("Status", r.Status, RouteStatuses),
	}
}

// RouteCSVHeader declares the export column order.
var RouteCSVHeader = []string{"Route ID", "Zone", "Driver", "Day", "Status"}

// CSVRow renders the record in RouteCSVHeader order.
func (r Route) CSVRow() []string {
	return []string{r.RouteID, r.Zone, r.Driver, r.Day, r.Status}
}

// DistributionTallies are the persisted counters the distribution screen
// keeps across restarts: deliveries scheduled per weekday and removals per
// reason. Stored under the distribution_tallies key.
type DistributionTallies struct {
	ByDay    map[string]int `json:"byDay"`
	ByReason map[string]int `json:"byReason"`
}

// NewDistributionTallies returns zeroed counters covering the full weekday
// and reason universes.
func NewDistributionTallies() DistributionTallies {
	t := DistributionTallies{
		ByDay:    make(map[string]int, len(Weekdays)),
		ByReason: make(map[string]int, len(RouteRemovalReasons)),
	}
	for _, d := range Weekdays {
		t.ByDay[d] = 0
	}
	for _, r := range RouteRemovalReasons {
		t.ByReason[r] = 0
	}
	return t
}

// UnitBatch is one tracked production batch in the unit tracker.
type UnitBatch struct {
	BatchNumber string `json:"batchNumber"`
	Product     string `json:"product"`
	Quantity    string `json:"quantity"`
	Date        string `json:"date"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}

// Validate computes the unit-tracker error map.
func (b UnitBatch) Validate() validation.Errors {
	return validation.Errors{
		"batchNumber": validation.CodedID("Batch number", b.BatchNumber),
		"product":     validation.CapitalizedText("Product", b.Product, 0),
		"quantity":    validation.Number("Quantity", b.Quantity, 0, 999, true),
		"date":        validation.Date("Date", b.Date),
		"destination": validation.CapitalizedText("Destination", b.Destination, 0),
		"status":      validation.Enum("Status", b.Status, BatchStatuses),
	}
}

// UnitBatchCSVHeader declares the export column order.
var UnitBatchCSVHeader = []string{"Batch Number", "Product", "Quantity", "Date", "Destination", "Status"}

// CSVRow renders the record in UnitBatchCSVHeader order.
func (b UnitBatch) CSVRow() []string {
	return []string{b.BatchNumber, b.Product, b.Quantity, b.Date, b.Destination, b.Status}
}
