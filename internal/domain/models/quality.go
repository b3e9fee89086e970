package models

import "github.com/atsdairy/dashboard/internal/validation"

// QualityTest is one lab result in the qa module. The numeric bounds are the
// lab's accepted instrument ranges, not pass thresholds.
type QualityTest struct {
	BatchNumber string `json:"batchNumber"`
	Date        string `json:"date"`
	PH          string `json:"ph"`
	Fat         string `json:"fat"`
	SNF         string `json:"snf"`
	Moisture    string `json:"moisture"`
	Lacometer   string `json:"lacometer"`
	Result      string `json:"result"`
}

// Validate computes the qa-module error map.
func (q QualityTest) Validate() validation.Errors {
	return validation.Errors{
		"batchNumber": validation.CodedID("Batch number", q.BatchNumber),
		"date":        validation.Date("Date", q.Date),
		"ph":          validation.Number("pH", q.PH, 0, 14, false),
		"fat":         validation.Number("Fat", q.Fat, 0, 10, false),
		"snf":         validation.Number("SNF", q.SNF, 0, 12, false),
		"moisture":    validation.Number("Moisture", q.Moisture, 0, 100, false),
		"lacometer":   validation.Number("Lacometer", q.Lacometer, 24, 32, false),
		"result":      validation.Enum("Result", q.Result, QualityResults),
	}
}

// QualityTestCSVHeader declares the export column order.
var QualityTestCSVHeader = []string{"Batch Number", "Date", "pH", "Fat", "SNF", "Moisture", "Lacometer", "Result"}

// CSVRow renders the record in QualityTestCSVHeader order.
func (q QualityTest) CSVRow() []string {
	return []string{q.BatchNumber, q.Date, q.PH, q.Fat, q.SNF, q.Moisture, q.Lacometer, q.Result}
}
