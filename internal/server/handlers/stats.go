package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atsdairy/dashboard/internal/aggregate"
	"github.com/atsdairy/dashboard/internal/domain/models"
)

// Per-screen summary strips. Each is a pure projection over the current
// list, recomputed on every call.

// FarmerStats summarizes the farmers portal.
func FarmerStats(farmers []models.Farmer) any {
	return gin.H{
		"count":       len(farmers),
		"totalCattle": aggregate.Sum(farmers, func(f models.Farmer) float64 { return num(f.CattleCount) }),
		"byLocation":  aggregate.GroupCount(farmers, func(f models.Farmer) string { return f.Location }, nil),
	}
}

// MilkStats summarizes the milking zone.
func MilkStats(entries []models.MilkEntry) any {
	qty := func(m models.MilkEntry) float64 { return num(m.Quantity) }
	return gin.H{
		"count":       len(entries),
		"totalLiters": aggregate.Round2(aggregate.Sum(entries, qty)),
		"avgPerEntry": aggregate.Round2(aggregate.Average(entries, qty)),
		"byShift":     aggregate.GroupSum(entries, func(m models.MilkEntry) string { return m.Shift }, qty, models.Shifts),
	}
}

// RouteStats summarizes the distribution network list (the persisted
// tallies are served separately).
func RouteStats(routes []models.Route) any {
	return gin.H{
		"count":  len(routes),
		"active": aggregate.CountWhere(routes, func(r models.Route) bool { return r.Status == "Active" }),
		"byDay":  aggregate.GroupCount(routes, func(r models.Route) string { return r.Day }, models.Weekdays),
	}
}

// UnitStats summarizes the unit tracker.
func UnitStats(batches []models.UnitBatch) any {
	return gin.H{
		"count":         len(batches),
		"totalQuantity": aggregate.Round2(aggregate.Sum(batches, func(b models.UnitBatch) float64 { return num(b.Quantity) })),
		"byStatus":      aggregate.GroupCount(batches, func(b models.UnitBatch) string { return b.Status }, models.BatchStatuses),
	}
}

// SaleStats summarizes the sales grid.
func SaleStats(sales []models.Sale) any {
	amount := func(s models.Sale) float64 { return num(s.Quantity) * num(s.UnitPrice) }
	return gin.H{
		"count":    len(sales),
		"revenue":  aggregate.Round2(aggregate.Sum(sales, amount)),
		"avgSale":  aggregate.Round2(aggregate.Average(sales, amount)),
		"byMethod": aggregate.GroupSum(sales, func(s models.Sale) string { return s.Method }, amount, models.PaymentMethods),
	}
}

// InventoryStats summarizes stock control.
func InventoryStats(items []models.InventoryItem) any {
	return gin.H{
		"count": len(items),
		"lowStock": aggregate.CountWhere(items, func(i models.InventoryItem) bool {
			return num(i.StockQuantity) <= num(i.ReorderLevel)
		}),
		"stockValue": aggregate.Round2(aggregate.Sum(items, func(i models.InventoryItem) float64 {
			return num(i.StockQuantity) * num(i.UnitPrice)
		})),
		"byCategory": aggregate.GroupCount(items, func(i models.InventoryItem) string { return i.Category }, nil),
	}
}

// TeamStats summarizes team management.
func TeamStats(members []models.TeamMember) any {
	return gin.H{
		"count":   len(members),
		"byRole":  aggregate.GroupCount(members, func(m models.TeamMember) string { return m.Role }, models.TeamRoles),
		"byShift": aggregate.GroupCount(members, func(m models.TeamMember) string { return m.Shift }, models.Shifts),
	}
}

// PaymentStats summarizes payflow.
func PaymentStats(payments []models.Payment) any {
	amount := func(p models.Payment) float64 { return num(p.Amount) }
	return gin.H{
		"count":       len(payments),
		"totalAmount": aggregate.Round2(aggregate.Sum(payments, amount)),
		"byStatus":    aggregate.GroupSum(payments, func(p models.Payment) string { return p.Status }, amount, models.PaymentStatuses),
		"byMethod":    aggregate.GroupCount(payments, func(p models.Payment) string { return p.Method }, models.PaymentMethods),
	}
}

// MessageStats summarizes the buzzbox board.
func MessageStats(messages []models.Message) any {
	return gin.H{
		"count":      len(messages),
		"byPriority": aggregate.GroupCount(messages, func(m models.Message) string { return m.Priority }, models.MessagePriorities),
	}
}

// QualityStats summarizes the qa module.
func QualityStats(tests []models.QualityTest) any {
	passRate := 0.0
	if len(tests) > 0 {
		passed := aggregate.CountWhere(tests, func(q models.QualityTest) bool { return q.Result == "Pass" })
		passRate = aggregate.Round2(float64(passed) / float64(len(tests)) * 100)
	}
	return gin.H{
		"count":    len(tests),
		"passRate": passRate,
		"avgFat":   aggregate.Round2(aggregate.Average(tests, func(q models.QualityTest) float64 { return num(q.Fat) })),
		"avgSnf":   aggregate.Round2(aggregate.Average(tests, func(q models.QualityTest) float64 { return num(q.SNF) })),
		"avgPh":    aggregate.Round2(aggregate.Average(tests, func(q models.QualityTest) float64 { return num(q.PH) })),
	}
}

// num parses a validated numeric field; rows only enter a list after their
// validator accepted the value.
func num(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}
