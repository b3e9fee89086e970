// Package insights computes the cross-screen aggregates behind the dashboard
// overview and the insights center. Everything here is recomputed from the
// current record lists on each call; record lists are never mutated.
package insights

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/aggregate"
	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/store"
)

// Overview is the derived summary served to the dashboard and insights
// screens. All monetary and volume figures are display-rounded.
type Overview struct {
	Farmers          int                `json:"farmers"`
	MilkEntries      int                `json:"milkEntries"`
	MilkIntakeLiters float64            `json:"milkIntakeLiters"`
	MilkAvgPerEntry  float64            `json:"milkAvgPerEntry"`
	MilkByShift      []aggregate.Bucket `json:"milkByShift"`
	MilkByWeekday    []aggregate.Bucket `json:"milkByWeekday"`
	SalesRevenue     float64            `json:"salesRevenue"`
	SalesByMethod    []aggregate.Bucket `json:"salesByMethod"`
	PendingPayments  int                `json:"pendingPayments"`
	PaymentsByStatus []aggregate.Bucket `json:"paymentsByStatus"`
	LowStockItems    int                `json:"lowStockItems"`
	QualityTests     int                `json:"qualityTests"`
	QualityPassRate  float64            `json:"qualityPassRate"`
}

// Archive persists daily snapshots. Satisfied by the MongoDB repository; nil
// when no archive backend is configured.
type Archive interface {
	SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// Service reads the screen stores and derives summaries.
type Service struct {
	farmers   *store.Store[models.Farmer]
	milk      *store.Store[models.MilkEntry]
	sales     *store.Store[models.Sale]
	inventory *store.Store[models.InventoryItem]
	payments  *store.Store[models.Payment]
	quality   *store.Store[models.QualityTest]
	archive   Archive
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the insights service. archive may be nil.
func NewService(
	farmers *store.Store[models.Farmer],
	milk *store.Store[models.MilkEntry],
	sales *store.Store[models.Sale],
	inventory *store.Store[models.InventoryItem],
	payments *store.Store[models.Payment],
	quality *store.Store[models.QualityTest],
	archive Archive,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		farmers:   farmers,
		milk:      milk,
		sales:     sales,
		inventory: inventory,
		payments:  payments,
		quality:   quality,
		archive:   archive,
		logger:    logger,
		now:       time.Now,
	}
}

// Overview recomputes the full cross-screen summary.
func (s *Service) Overview() Overview {
	milk := s.milk.List()
	sales := s.sales.List()
	payments := s.payments.List()
	inventory := s.inventory.List()
	quality := s.quality.List()

	milkQty := func(m models.MilkEntry) float64 { return num(m.Quantity) }
	revenue := aggregate.Sum(sales, func(s models.Sale) float64 {
		return num(s.Quantity) * num(s.UnitPrice)
	})

	passRate := 0.0
	if len(quality) > 0 {
		passed := aggregate.CountWhere(quality, func(q models.QualityTest) bool { return q.Result == "Pass" })
		passRate = aggregate.Round2(float64(passed) / float64(len(quality)) * 100)
	}

	return Overview{
		Farmers:          s.farmers.Len(),
		MilkEntries:      len(milk),
		MilkIntakeLiters: aggregate.Round2(aggregate.Sum(milk, milkQty)),
		MilkAvgPerEntry:  aggregate.Round2(aggregate.Average(milk, milkQty)),
		MilkByShift:      aggregate.GroupSum(milk, func(m models.MilkEntry) string { return m.Shift }, milkQty, models.Shifts),
		MilkByWeekday:    aggregate.GroupSum(milk, weekdayOf, milkQty, models.Weekdays),
		SalesRevenue:     aggregate.Round2(revenue),
		SalesByMethod: aggregate.GroupSum(sales, func(s models.Sale) string { return s.Method },
			func(s models.Sale) float64 { return num(s.Quantity) * num(s.UnitPrice) }, models.PaymentMethods),
		PendingPayments: aggregate.CountWhere(payments, func(p models.Payment) bool { return p.Status == "Pending" }),
		PaymentsByStatus: aggregate.GroupCount(payments,
			func(p models.Payment) string { return p.Status }, models.PaymentStatuses),
		LowStockItems: aggregate.CountWhere(inventory, func(i models.InventoryItem) bool {
			return num(i.StockQuantity) <= num(i.ReorderLevel)
		}),
		QualityTests:    len(quality),
		QualityPassRate: passRate,
	}
}

// SnapshotDaily derives today's summary and archives it. A no-op when no
// archive backend is configured.
func (s *Service) SnapshotDaily(ctx context.Context) error {
	if s.archive == nil {
		s.logger.Debug("snapshot archive not configured, skipping")
		return nil
	}

	o := s.Overview()
	snapshot := models.DailySnapshot{
		Date:             s.now().UTC().Truncate(24 * time.Hour),
		Farmers:          o.Farmers,
		MilkIntakeLiters: o.MilkIntakeLiters,
		SalesRevenue:     o.SalesRevenue,
		PendingPayments:  o.PendingPayments,
		LowStockItems:    o.LowStockItems,
		QualityPassRate:  o.QualityPassRate,
		CreatedAt:        s.now().UTC(),
	}
	return s.archive.SaveDailySnapshot(ctx, snapshot)
}

// weekdayOf maps an entry's YYYY-MM-DD date to its weekday name. Entries
// with dates the validator would reject land outside the universe and are
// dropped from the grouping.
func weekdayOf(m models.MilkEntry) string {
	t, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// num parses a validated numeric field; rows only enter a list after their
// validator accepted the value, so parse failures collapse to zero.
func num(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}
