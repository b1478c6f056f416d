package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pharmatrack/p/internal/api"
	"pharmatrack/p/internal/config"
	"pharmatrack/p/internal/database"
	"pharmatrack/p/internal/inventory"
	"pharmatrack/p/internal/migrations"
	"pharmatrack/p/internal/reports"
	"pharmatrack/p/internal/sales"
	"pharmatrack/p/internal/seed"
	"pharmatrack/p/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := newLogger(cfg.LogFormat)
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	medicines := store.NewMedicineStore(db)
	customers := store.NewCustomerStore(db)
	suppliers := store.NewSupplierStore(db)
	saleStore := store.NewSaleStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MedicineCatalog != "" {
		seed.LoadCatalog(ctx, medicines, cfg.MedicineCatalog, log)
	}

	ledger := inventory.NewLedger(medicines)
	processor := sales.NewProcessor(ledger, saleStore)
	reportSvc := reports.NewService(medicines, saleStore)
	handler := api.New(log, medicines, customers, suppliers, saleStore, processor, reportSvc)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("pharmatrack server starting", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}

func newLogger(format string) *zap.Logger {
	if format == "json" {
		log, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return log
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return log
}
