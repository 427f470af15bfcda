package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/feed-archiver/app/archive"
	"github.com/lysyi3m/feed-archiver/app/capture"
	"github.com/lysyi3m/feed-archiver/app/cfg"
	"github.com/lysyi3m/feed-archiver/app/database"
	"github.com/lysyi3m/feed-archiver/app/logger"
	"github.com/lysyi3m/feed-archiver/app/tasks"
)

func main() {
	os.Exit(run())
}

func run() int {
	appCfg, err := cfg.Load()
	if err != nil {
		// go-flags has already printed the problem
		return 1
	}
	if appCfg == nil {
		return 0
	}
	if appCfg.ShowVersion {
		fmt.Printf("feed-archiver %s\n", appCfg.Version)
		return 0
	}

	if err := logger.Init(os.Stderr, appCfg.LogFormat, appCfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := cfg.ValidateOutputDir(appCfg.OutputDir); err != nil {
		slog.Error("Output directory unusable", "path", appCfg.OutputDir, "error", err)
		return 1
	}

	rules, err := archive.LoadRules(appCfg.RulesPath)
	if err != nil {
		slog.Error("Failed to load rules", "error", err)
		return 1
	}
	exclusions, err := archive.LoadExclusions(appCfg.ExclusionsPath)
	if err != nil {
		slog.Error("Failed to load exclusions", "error", err)
		return 1
	}
	slog.Debug("Configuration loaded", "rules", len(rules), "exclusions", len(exclusions), "version", appCfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, err := database.OpenCache(appCfg.CachePath)
	if err != nil {
		slog.Error("Failed to open cache", "path", appCfg.CachePath, "error", err)
		return 1
	}
	defer cache.Close()

	feeds, err := database.NewFeedRepository(cache).GetFeeds(ctx)
	if err != nil {
		slog.Error("Failed to read feeds", "error", err)
		return 1
	}
	items, err := database.NewItemRepository(cache).GetItems(ctx)
	if err != nil {
		slog.Error("Failed to read items", "error", err)
		return 1
	}
	slog.Info("Cache loaded", "feeds", len(feeds), "items", len(items))

	invoker, err := newInvoker(appCfg)
	if err != nil {
		slog.Error("Failed to set up capture tools", "error", err)
		return 1
	}

	var captureRepo database.CaptureRepository
	if appCfg.LedgerPath != "" && !appCfg.DryRun {
		ledger, err := database.OpenLedger(appCfg.LedgerPath)
		if err != nil {
			slog.Error("Failed to open ledger", "path", appCfg.LedgerPath, "error", err)
			return 1
		}
		defer ledger.Close()
		captureRepo = database.NewCaptureRepository(ledger)
	}

	archiver := tasks.NewArchiver(
		archive.NewRuleSet(rules),
		archive.NewExclusionFilter(exclusions),
		archive.NewPlanner(appCfg.OutputDir),
		invoker,
		captureRepo,
		tasks.Options{
			Workers:  appCfg.WorkerCount,
			Timeout:  appCfg.Timeout,
			DryRun:   appCfg.DryRun,
			FailFast: appCfg.FailFast,
		},
	)

	summary, err := archiver.Run(ctx, feeds, items)
	if captureRepo != nil {
		logLedgerCounts(context.WithoutCancel(ctx), captureRepo, summary.RunID)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("Run interrupted", summary.Args()...)
		} else {
			slog.Error("Run aborted", append(summary.Args(), "error", err)...)
		}
		return 1
	}

	slog.Info("Run completed", summary.Args()...)
	return 0
}

func newInvoker(appCfg *cfg.Cfg) (capture.Invoker, error) {
	var process capture.Invoker
	switch appCfg.Invoker {
	case cfg.InvokerExec, "":
		process = capture.NewExecInvoker()
	case cfg.InvokerShell:
		process = capture.NewShellInvoker("sh")
	default:
		return nil, fmt.Errorf("unknown invoker %q", appCfg.Invoker)
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}

	return capture.NewRouter(process).
		Handle(archive.ToolReadability, capture.NewReadabilityInvoker(httpClient, appCfg.UserAgent)), nil
}

func logLedgerCounts(ctx context.Context, repo database.CaptureRepository, runID string) {
	counts, err := repo.GetStateCounts(ctx, runID)
	if err != nil {
		slog.Warn("Failed to read ledger state counts", "run_id", runID, "error", err)
		return
	}
	slog.Info("Ledger state counts", "run_id", runID, "counts", counts)
}
