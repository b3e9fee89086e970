package models

import "github.com/atsdairy/dashboard/internal/validation"

// Sale is one transaction on the sales grid.
type Sale struct {
	ID        int    `json:"id"`
	Product   string `json:"product"`
	Customer  string `json:"customer"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Date      string `json:"date"`
	Method    string `json:"method"`
}

// SetID stamps the assigned sequence id.
func (s *Sale) SetID(id int) { s.ID = id }

// Validate computes the sales-grid error map.
func (s Sale) Validate() validation.Errors {
	return validation.Errors{
		"product":   validation.CapitalizedText("Product", s.Product, 0),
		"customer":  validation.CapitalizedText("Customer", s.Customer, 0),
		"quantity":  validation.Number("Quantity", s.Quantity, 0, 999, true),
		"unitPrice": validation.PositiveNumber("Unit price", s.UnitPrice),
		"date":      validation.Date("Date", s.Date),
		"method":    validation.Enum("Payment method", s.Method, PaymentMethods),
	}
}

// SaleCSVHeader declares the export column order.
var SaleCSVHeader = []string{"Product", "Customer", "Quantity", "Unit Price", "Date", "Method"}

// CSVRow renders the record in SaleCSVHeader order.
func (s Sale) CSVRow() []string {
	return []string{s.Product, s.Customer, s.Quantity, s.UnitPrice, s.Date, s.Method}
}

// InventoryItem is one stocked product in stock control.
type InventoryItem struct {
	ID            int    `json:"id"`
	ProductName   string `json:"productName"`
	Category      string `json:"category"`
	StockQuantity string `json:"stockQuantity"`
	ReorderLevel  string `json:"reorderLevel"`
	UnitPrice     string `json:"unitPrice"`
	LastRestocked string `json:"lastRestocked"`
}

// SetID stamps the assigned sequence id.
func (i *InventoryItem) SetID(id int) { i.ID = id }

// Validate computes the stock-control error map.
func (i InventoryItem) Validate() validation.Errors {
	return validation.Errors{
		"productName":   validation.CapitalizedText("Product name", i.ProductName, 0),
		"category":      validation.CapitalizedText("Category", i.Category, 0),
		"stockQuantity": validation.Number("Stock quantity", i.StockQuantity, 0, 999, true),
		"reorderLevel":  validation.Number("Reorder level", i.ReorderLevel, 0, 999, true),
		"unitPrice":     validation.PositiveNumber("Unit price", i.UnitPrice),
		"lastRestocked": validation.Date("Last restocked", i.LastRestocked),
	}
}

// InventoryCSVHeader declares the export column order.
var InventoryCSVHeader = []string{"Product Name", "Category", "Stock Quantity", "Reorder Level", "Unit Price", "Last Restocked"}

// CSVRow renders the record in InventoryCSVHeader order.
func (i InventoryItem) CSVRow() []string {
	return []string{i.ProductName, i.Category, i.StockQuantity, i.ReorderLevel, i.UnitPrice, i.LastRestocked}
}

// Payment is one payflow transaction, keyed by its coded transaction id.
type Payment struct {
	TransactionID string `json:"transactionId"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	Method        string `json:"method"`
	Status        string `json:"status"`
}

// Validate computes the payflow error map.
func (p Payment) Validate() validation.Errors {
	return validation.Errors{
		"transactionId": validation.CodedID("Transaction ID", p.TransactionID),
		"date":          validation.Date("Date", p.Date),
		"amount":        validation.PositiveNumber("Amount", p.Amount),
		"method":        validation.Enum("Method", p.Method, PaymentMethods),
		"status":        validation.Enum("Status", p.Status, PaymentStatuses),
	}
}

// PaymentCSVHeader declares the export column order.
var PaymentCSVHeader = []string{"Transaction ID", "Date", "Amount", "Method", "Status"}

// CSVRow renders the record in PaymentCSVHeader order.
func (p Payment) CSVRow() []string {
	return []string{p.TransactionID, p.Date, p.Amount, p.Method, p.Status}
}

// PaymentDraft is the half-filled payflow form persisted between visits
// under the payflow_draft key. No validation applies until submission.
type PaymentDraft struct {
	TransactionID string `json:"transactionId"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	Method        string `json:"method"`
	Status        string `json:"status"`
}
