package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/masarusaitou/fudousan/config"
	"github.com/masarusaitou/fudousan/geocode"
	"github.com/masarusaitou/fudousan/models"
	"github.com/masarusaitou/fudousan/scraper/suumo"
	"github.com/masarusaitou/fudousan/services"
	"github.com/masarusaitou/fudousan/storage"
	"github.com/masarusaitou/fudousan/utils"
	"github.com/masarusaitou/fudousan/web"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== 賃貸物件ブラウザ starting ===")
	logger.Info("Config — source: %s | port: %d | geocode: %v",
		cfg.Source, cfg.Port, cfg.GeocodeEnabled)

	rows, err := loadRows(cfg, logger)
	if err != nil {
		logger.Error("Data source failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d raw rows", len(rows))

	if cfg.GeocodeEnabled {
		gc := geocode.NewClient(cfg.GeocodeURL, cfg.RateLimitMs, cfg.MaxRetries, logger)
		gc.FillMissing(context.Background(), rows)
	}

	if cfg.CSVSnapshotPath != "" {
		if err := storage.SnapshotRawRows(cfg.CSVSnapshotPath, rows); err != nil {
			logger.Warn("CSV snapshot failed: %v", err)
		} else {
			logger.Info("Raw rows saved to %s", cfg.CSVSnapshotPath)
		}
	}

	normalizer := services.NewNormalizer(logger)
	listings := normalizer.Normalize(rows)
	if len(listings) == 0 {
		logger.Error("No listings survived normalization. Exiting.")
		os.Exit(1)
	}

	if cfg.SnapshotToDB {
		store, err := storage.NewPostgresStore(cfg.DSN())
		if err != nil {
			logger.Warn("PostgreSQL unavailable, snapshot skipped: %v", err)
		} else {
			if err := store.SaveSnapshot(listings); err != nil {
				logger.Warn("PostgreSQL snapshot failed: %v", err)
			} else {
				logger.Info("Canonical set stored in PostgreSQL (table: listings)")
			}
			store.Close()
		}
	}

	catalog := services.NewCatalog(listings)
	logger.Info("Catalog ready — %d listings | %d areas | %d floor plans | rent %.1f〜%.1f万円",
		catalog.Summary.Total, len(catalog.Summary.Areas), len(catalog.Summary.FloorPlans),
		catalog.Summary.MinRent, catalog.Summary.MaxRent)

	srv := web.NewServer(cfg, logger, catalog)
	server := http.Server{
		Handler: srv.Handler(),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	logger.Info("Listening on :%d", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server closed: %v", err)
		os.Exit(1)
	}
	logger.Info("Server closed")
}

// loadRows picks the configured row source. Spreadsheet is the normal
// path; postgres replays the last snapshot; suumo scrapes live.
func loadRows(cfg *config.Config, logger *utils.Logger) ([]models.RawRow, error) {
	var source storage.RowSource

	switch cfg.Source {
	case "postgres":
		store, err := storage.NewPostgresStore(cfg.DSN())
		if err != nil {
			return nil, err
		}
		source = store
	case "suumo":
		source = suumo.New(cfg, logger)
	default:
		source = storage.NewWorkbookReader(cfg.XLSXPath, cfg.SheetName)
	}
	defer source.Close()

	return source.Load()
}
