package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/config"
	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/export"
	"github.com/atsdairy/dashboard/internal/kvstore"
	"github.com/atsdairy/dashboard/internal/repository/mongodb"
	"github.com/atsdairy/dashboard/internal/repository/sheets"
	"github.com/atsdairy/dashboard/internal/scheduler"
	"github.com/atsdairy/dashboard/internal/server/handlers"
	"github.com/atsdairy/dashboard/internal/server/router"
	"github.com/atsdairy/dashboard/internal/session"
	buzzboxsvc "github.com/atsdairy/dashboard/internal/service/buzzbox"
	distributionsvc "github.com/atsdairy/dashboard/internal/service/distribution"
	insightssvc "github.com/atsdairy/dashboard/internal/service/insights"
	payflowsvc "github.com/atsdairy/dashboard/internal/service/payflow"
	"github.com/atsdairy/dashboard/internal/store"
	"github.com/atsdairy/dashboard/pkg/clients/webhook"
	"github.com/atsdairy/dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx := context.Background()

	// Key-value persistence: Mongo when configured, JSON files otherwise.
	// The Mongo repository also archives daily snapshots.
	var kv kvstore.Store
	var archive insightssvc.Archive
	if cfg.Storage.MongoURI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDB)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		kv = mongoRepo
		archive = mongoRepo
		baseLogger.Info("mongodb persistence enabled", zap.String("db", cfg.Storage.MongoDB))
	} else {
		fileStore, err := kvstore.NewFileStore(cfg.Storage.DataDir, baseLogger.Named("kvstore.file"))
		if err != nil {
			baseLogger.Fatal("failed to init file store", zap.Error(err))
		}
		kv = fileStore
		baseLogger.Info("file persistence enabled", zap.String("dir", cfg.Storage.DataDir))
	}

	var sheetsRepo sheets.Repository
	if cfg.SheetsEnabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("google sheets export enabled")
	}
	exportSvc := export.NewService(sheetsRepo, baseLogger.Named("svc.export"))

	// One validated record store per screen.
	farmers := store.New[models.Farmer](models.Farmer.Validate,
		store.WithIDAssign[models.Farmer](func(f *models.Farmer, id int) { f.SetID(id) }))
	milk := store.New[models.MilkEntry](models.MilkEntry.Validate,
		store.WithIDAssign[models.MilkEntry](func(m *models.MilkEntry, id int) { m.SetID(id) }))
	routes := store.New[models.Route](models.Route.Validate)
	units := store.New[models.UnitBatch](models.UnitBatch.Validate)
	sales := store.New[models.Sale](models.Sale.Validate,
		store.WithIDAssign[models.Sale](func(s *models.Sale, id int) { s.SetID(id) }))
	inventory := store.New[models.InventoryItem](models.InventoryItem.Validate,
		store.WithIDAssign[models.InventoryItem](func(i *models.InventoryItem, id int) { i.SetID(id) }))
	team := store.New[models.TeamMember](models.TeamMember.Validate)
	payments := store.New[models.Payment](models.Payment.Validate)
	messages := store.New[models.Message](models.Message.Validate,
		store.WithIDAssign[models.Message](func(m *models.Message, id int) { m.SetID(id) }))
	quality := store.New[models.QualityTest](models.QualityTest.Validate)

	sessionSvc, err := session.NewService(ctx, kv, baseLogger.Named("svc.session"))
	if err != nil {
		baseLogger.Fatal("failed to init session service", zap.Error(err))
	}

	distributionSvc, err := distributionsvc.NewService(ctx, routes, kv, baseLogger.Named("svc.distribution"))
	if err != nil {
		baseLogger.Fatal("failed to init distribution service", zap.Error(err))
	}

	payflowSvc := payflowsvc.NewService(payments, kv, baseLogger.Named("svc.payflow"))

	var notifier webhook.Client
	if cfg.Buzzbox.WebhookURL != "" {
		notifier = webhook.NewClient(cfg.Buzzbox.WebhookURL)
		baseLogger.Info("buzzbox webhook enabled")
	}
	buzzboxSvc := buzzboxsvc.NewService(messages, notifier, baseLogger.Named("svc.buzzbox"))
	sessionSvc.OnLogout(buzzboxSvc.Clear)

	insightsSvc := insightssvc.NewService(farmers, milk, sales, inventory, payments, quality, archive, baseLogger.Named("svc.insights"))

	hlog := baseLogger.Named("handlers")
	routeResource := handlers.NewResource("distribution-network", routes, models.RouteCSVHeader, models.Route.CSVRow, handlers.RouteStats, exportSvc, hlog)
	paymentResource := handlers.NewResource("payflow", payments, models.PaymentCSVHeader, models.Payment.CSVRow, handlers.PaymentStats, exportSvc, hlog)
	messageResource := handlers.NewResource("buzzbox", messages, models.MessageCSVHeader, models.Message.CSVRow, handlers.MessageStats, exportSvc, hlog)

	engine := router.New(router.Handlers{
		Auth:         handlers.NewAuthHandler(sessionSvc, hlog.Named("auth")),
		Insights:     handlers.NewInsightsHandler(insightsSvc, hlog.Named("insights")),
		Prefs:        handlers.NewPrefsHandler(kv, hlog.Named("prefs")),
		Farmers:      handlers.NewResource("farmers-portal", farmers, models.FarmerCSVHeader, models.Farmer.CSVRow, handlers.FarmerStats, exportSvc, hlog),
		Milk:         handlers.NewResource("milking-zone", milk, models.MilkEntryCSVHeader, models.MilkEntry.CSVRow, handlers.MilkStats, exportSvc, hlog),
		Distribution: handlers.NewDistributionHandler(routeResource, distributionSvc, hlog.Named("distribution")),
		Units:        handlers.NewResource("unit-tracker", units, models.UnitBatchCSVHeader, models.UnitBatch.CSVRow, handlers.UnitStats, exportSvc, hlog),
		Sales:        handlers.NewResource("sales-grid", sales, models.SaleCSVHeader, models.Sale.CSVRow, handlers.SaleStats, exportSvc, hlog),
		Inventory:    handlers.NewResource("stock-control", inventory, models.InventoryCSVHeader, models.InventoryItem.CSVRow, handlers.InventoryStats, exportSvc, hlog),
		Team:         handlers.NewResource("team-management", team, models.TeamMemberCSVHeader, models.TeamMember.CSVRow, handlers.TeamStats, exportSvc, hlog),
		Payflow:      handlers.NewPayflowHandler(paymentResource, payflowSvc, hlog.Named("payflow")),
		Buzzbox:      handlers.NewBuzzboxHandler(messageResource, buzzboxSvc, hlog.Named("buzzbox")),
		Quality:      handlers.NewResource("qa-module", quality, models.QualityTestCSVHeader, models.QualityTest.CSVRow, handlers.QualityStats, exportSvc, hlog),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, insightsSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-runCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
