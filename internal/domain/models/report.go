package models

import "time"

// DailySnapshot represents the aggregated daily data archived in MongoDB.
type DailySnapshot struct {
	Date             time.Time `bson:"date" json:"date"`
	Farmers          int       `bson:"farmers" json:"farmers"`
	MilkIntakeLiters float64   `bson:"milk_intake_liters" json:"milk_intake_liters"`
	SalesRevenue     float64   `bson:"sales_revenue" json:"sales_revenue"`
	PendingPayments  int       `bson:"pending_payments" json:"pending_payments"`
	LowStockItems    int       `bson:"low_stock_items" json:"low_stock_items"`
	QualityPassRate  float64   `bson:"quality_pass_rate" json:"quality_pass_rate"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
