package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/argentix/silverwatch/internal/api"
	"github.com/argentix/silverwatch/internal/archive"
	"github.com/argentix/silverwatch/internal/benchmark"
	"github.com/argentix/silverwatch/internal/config"
	"github.com/argentix/silverwatch/internal/database"
	"github.com/argentix/silverwatch/internal/engine"
	"github.com/argentix/silverwatch/internal/export"
	"github.com/argentix/silverwatch/internal/melt"
	"github.com/argentix/silverwatch/internal/notify"
	"github.com/argentix/silverwatch/internal/prospect"
	"github.com/argentix/silverwatch/internal/seen"
	"github.com/argentix/silverwatch/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:  "silverwatch",
		Usage: "evaluate silver coin auction listings for melt and numismatic value",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "run the scan loop, with the HTTP API when the archive is enabled",
				Action: runCmd,
			},
			{
				Name:   "scan",
				Usage:  "run a single scan cycle and exit",
				Action: scanCmd,
			},
			{
				Name:   "export",
				Usage:  "export the latest archived cycle as a spreadsheet report",
				Action: exportCmd,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCmd(*cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	store := benchmark.Load(cfg.PriceStorePath, cfg.EMAAlpha, cfg.PriceCaptureBumpPct)
	seenSet := seen.Load(cfg.SeenStorePath)

	var (
		pool     *pgxpool.Pool
		archiver worker.Archiver
		srv      *http.Server
	)
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = connectArchive(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		cycles := archive.NewService(archive.NewPgRepository(pool))
		archiver = cycles
		srv = api.NewServer(cfg.HTTPPort, cycles, store)
	} else {
		slog.Info("DATABASE_URL not set, archive and HTTP API disabled")
	}

	w := worker.NewScanWorker(workerOptions(cfg), store, seenSet, notify.NewLogNotifier(cfg.MinMarginPct, cfg.MaxMarginPct), archiver)
	go w.Run(ctx)

	if srv != nil {
		go func() {
			slog.Info("HTTP server listening", "port", cfg.HTTPPort)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("HTTP server error", "error", err)
				stop()
			}
		}()
	}

	<-ctx.Done()
	slog.Info("shutting down")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}

func scanCmd(*cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	store := benchmark.Load(cfg.PriceStorePath, cfg.EMAAlpha, cfg.PriceCaptureBumpPct)
	seenSet := seen.Load(cfg.SeenStorePath)

	var archiver worker.Archiver
	if cfg.DatabaseURL != "" {
		pool, err := connectArchive(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		archiver = archive.NewService(archive.NewPgRepository(pool))
	}

	w := worker.NewScanWorker(workerOptions(cfg), store, seenSet, notify.NewLogNotifier(cfg.MinMarginPct, cfg.MaxMarginPct), archiver)
	return w.RunCycle(ctx)
}

func exportCmd(*cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return errors.New("export requires DATABASE_URL (reports are built from the archive)")
	}

	pool, err := connectArchive(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	cycles := archive.NewService(archive.NewPgRepository(pool))
	cycle, err := cycles.GetLatest(ctx)
	if err != nil {
		return fmt.Errorf("loading latest cycle: %w", err)
	}

	var record archive.CycleRecord
	if err := json.Unmarshal(cycle.Data, &record); err != nil {
		return fmt.Errorf("decoding archived cycle: %w", err)
	}

	writer, err := reportWriter(ctx, cfg)
	if err != nil {
		return err
	}

	rows := export.BuildRows(record.Evaluated)
	if err := writer.Write(ctx, rows); err != nil {
		return err
	}

	slog.Info("report exported",
		"cycle_date", cycle.CycleDate.Format("2006-01-02"),
		"rows", len(rows))
	return nil
}

func reportWriter(ctx context.Context, cfg config.Config) (export.ReportWriter, error) {
	if cfg.SheetsSpreadsheet != "" && cfg.SheetsCredentials != "" {
		return export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheet, cfg.SheetsCredentials)
	}
	return export.NewXLSXWriter(cfg.ReportXLSXPath), nil
}

func connectArchive(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := database.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("opening migrations: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func workerOptions(cfg config.Config) worker.Options {
	return worker.Options{
		Folder:               cfg.ListingsFolder,
		DeleteProcessed:      cfg.DeleteProcessed,
		PriceStorePath:       cfg.PriceStorePath,
		SeenStorePath:        cfg.SeenStorePath,
		CaptureMaxMinutes:    cfg.PriceCaptureMaxMinutes,
		BulkTolerantQuantity: cfg.BulkTolerantQuantity,
		Interval:             cfg.ScanInterval,
		Engine: engine.Config{
			Melt: melt.Params{
				SpotPrice:    cfg.SpotPrice,
				PayoutPct:    cfg.PawnPayoutPct,
				MinMarginPct: cfg.MinMarginPct,
				BidOffset:    cfg.BidOffset,
				BulkTolerant: cfg.BulkTolerantQuantity,
			},
			NumismaticPayoutPct: cfg.NumismaticPayoutPct,
			Prospect: prospect.Config{
				Cat3TolerancePct: cfg.ProsCat3TolerancePct,
				Cat3Bonus:        cfg.ProsCat3Bonus,
				Cat3RequireSoon:  cfg.ProsCat3RequireSoon,
				Cat3MaxMinutes:   cfg.ProsCat3MaxMinutes,
			},
			ProsMaxTotal:           cfg.ProsMaxTotal,
			ProsMinDealerMarginPct: cfg.ProsMinDealerMarginPct,
			ProsMinScore:           cfg.ProsMinScore,
		},
	}
}
