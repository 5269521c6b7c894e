package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Finance-Coder1/stock-data-explorer/internal/chart"
	"github.com/Finance-Coder1/stock-data-explorer/internal/collector"
	"github.com/Finance-Coder1/stock-data-explorer/internal/config"
	"github.com/Finance-Coder1/stock-data-explorer/internal/exporter"
	"github.com/Finance-Coder1/stock-data-explorer/internal/menu"
	"github.com/Finance-Coder1/stock-data-explorer/internal/recorder"
	"github.com/Finance-Coder1/stock-data-explorer/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context cancelled on Ctrl+C so the menu loop stops between prompts.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := menu.New(
		os.Stdin, os.Stdout,
		collector.NewCollector(fetcher),
		session.NewStore(),
		rec,
		exporter.NewCSVExporter(cfg.Output.CSVDir),
		chart.NewRenderer(cfg.Output.ChartDir),
		cfg.History.ListLimit,
	)

	if err := m.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("[FATAL] menu: %v", err)
	}
	log.Println("[INFO] stock data explorer stopped")
}
