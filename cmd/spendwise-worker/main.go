package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spendwise/internal/amqp"
	"spendwise/internal/config"
	"spendwise/internal/export"
	applog "spendwise/internal/log"
)

// spendwise-worker consumes expense events from the queue and appends them
// to a Google Sheet.
func main() {
	_ = godotenv.Load()

	cfg := applog.DefaultConfig()
	cfg.Component = applog.ComponentWorker
	logger := applog.New(cfg)
	applog.SetDefault(logger)

	logger.Info("Starting spendwise-worker")

	appCfg := config.Load()
	if err := appCfg.ValidateExport(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exporter, err := export.NewSheetsExporter(ctx, export.Options{
		SpreadsheetID:   appCfg.GoogleSpreadsheetID,
		SheetName:       appCfg.GoogleSheetName,
		CredentialsFile: appCfg.GoogleCredentialsFile,
		CredentialsJSON: appCfg.GoogleCredentialsJSON,
	})
	if err != nil {
		logger.Error("Failed to initialize Sheets exporter", applog.FieldError, err)
		os.Exit(1)
	}

	client, err := amqp.NewClient(appCfg.AMQPURL, appCfg.AMQPExchange, appCfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	worker := export.NewWorker(exporter)

	logger.Info("Consuming expense events",
		"exchange", appCfg.AMQPExchange,
		"queue", appCfg.AMQPQueue,
		"spreadsheet_id", appCfg.GoogleSpreadsheetID)

	err = client.ConsumeExpenseEvents(ctx, func(msg *amqp.ExpenseEventMessage) error {
		return worker.Handle(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped with error", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
