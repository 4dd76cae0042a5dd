package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/dkpatel/salestrack/internal/config"
	"github.com/dkpatel/salestrack/internal/scheduler"
	"github.com/dkpatel/salestrack/internal/server/handlers"
	"github.com/dkpatel/salestrack/internal/server/router"
	exportsvc "github.com/dkpatel/salestrack/internal/service/export"
	itemssvc "github.com/dkpatel/salestrack/internal/service/items"
	"github.com/dkpatel/salestrack/pkg/clients/sheetdb"
	"github.com/dkpatel/salestrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	storeClient := sheetdb.NewClient(cfg.Sheet)

	itemsSvc := itemssvc.NewService(storeClient, baseLogger.Named("svc.items"))
	exportSvc := exportsvc.NewService(itemsSvc, baseLogger.Named("svc.export"))

	itemsHandler := handlers.NewItemsHandler(itemsSvc, baseLogger.Named("handlers.items"))
	exportHandler := handlers.NewExportHandler(exportSvc, baseLogger.Named("handlers.export"))
	engine := router.New(itemsHandler, exportHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Summary, itemsSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
