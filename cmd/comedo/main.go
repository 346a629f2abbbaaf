// Comedo - comedogenicity risk scoring for INCI ingredient lists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/johnnie2785/comedogenic-tester/internal/api"
	"github.com/johnnie2785/comedogenic-tester/internal/cache"
	"github.com/johnnie2785/comedogenic-tester/internal/catalog"
	"github.com/johnnie2785/comedogenic-tester/internal/domain"
	"github.com/johnnie2785/comedogenic-tester/internal/modifier"
	"github.com/johnnie2785/comedogenic-tester/internal/repository"
	"github.com/johnnie2785/comedogenic-tester/internal/scorer"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	var (
		serve       = flag.Bool("serve", false, "start the HTTP shell instead of a one-shot analysis")
		text        = flag.String("text", "", "ingredient list to analyze (comma/semicolon/newline separated)")
		file        = flag.String("file", "", "read the ingredient list from a file")
		batch       = flag.String("batch", "", "analyze one ingredient list per line of a file")
		workers     = flag.Int("workers", 4, "concurrent analyses in batch mode")
		leaveOn     = flag.Bool("leave-on", false, "leave-on product")
		formulation = flag.String("formulation", "o/w", "formulation type (o/w, w/o, anhydrous, oil only)")
		csvPath     = flag.String("catalog", "", "catalog CSV path (overrides COMEDO_CATALOG)")
	)
	flag.Parse()

	// Initialize structured logger
	logLevel := slog.LevelInfo
	if os.Getenv("COMEDO_DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := loadConfig(*csvPath)

	slog.Info("starting comedo",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
		"repository", cfg.Repository.Driver,
		"cache", cfg.Cache.Type,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalog store. Failure is non-fatal: the catalog degrades
	// to the CSV source alone, or to empty.
	var store domain.CatalogStore
	if s, err := repository.New(cfg.Repository); err != nil {
		slog.Warn("catalog store unavailable, continuing without it", "error", err)
	} else {
		store = s
		defer store.Close()
	}

	// Initialize resolve cache. Also non-fatal.
	var resolveCache domain.Cache
	if c, err := cache.New(cfg.Cache); err != nil {
		slog.Warn("cache unavailable, continuing without it", "error", err)
	} else {
		resolveCache = c
		defer resolveCache.Close()
	}

	// Build the catalog
	catalogs := catalog.NewManager(ctx, catalog.ManagerConfig{
		Store:    store,
		Cache:    resolveCache,
		CacheTTL: cfg.Cache.LocalTTL,
		CSVPath:  cfg.Catalog.CSVPath,
	})

	// Initialize custom modifier engine and load rules from the store
	engine, err := modifier.NewEngine()
	if err != nil {
		slog.Error("failed to initialize modifier engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	if store != nil {
		configs, err := store.ListModifiers(ctx)
		if err != nil {
			slog.Warn("failed to list modifier rules", "error", err)
		} else if err := engine.LoadRules(configs); err != nil {
			slog.Warn("failed to load modifier rules", "error", err)
		}
	}
	slog.Info("modifier engine initialized", "rules_count", engine.RulesCount())

	sc := scorer.New(catalogs, engine)

	switch {
	case *serve:
		runServer(ctx, cancel, cfg, catalogs, sc, store, resolveCache, engine)
	case *batch != "":
		if err := runBatch(ctx, sc, *batch, *workers, *leaveOn, *formulation); err != nil {
			slog.Error("batch analysis failed", "error", err)
			os.Exit(1)
		}
	default:
		input := *text
		if *file != "" {
			data, err := os.ReadFile(*file)
			if err != nil {
				slog.Error("failed to read input file", "path", *file, "error", err)
				os.Exit(1)
			}
			input = string(data)
		}
		runOnce(ctx, sc, input, *leaveOn, *formulation)
	}
}

// loadConfig builds the configuration from defaults plus COMEDO_* env
// overrides, mirroring how the flags layer on top.
func loadConfig(csvOverride string) *domain.Config {
	cfg := domain.DefaultConfig()

	if v := os.Getenv("COMEDO_CATALOG"); v != "" {
		cfg.Catalog.CSVPath = v
	}
	if csvOverride != "" {
		cfg.Catalog.CSVPath = csvOverride
	}
	if v := os.Getenv("COMEDO_DB"); v != "" {
		cfg.Repository.SQLitePath = v
	}
	if os.Getenv("COMEDO_DRIVER") == "postgres" {
		cfg.Repository.Driver = "postgres"
		cfg.Repository.PostgresHost = os.Getenv("COMEDO_PG_HOST")
		if p, err := strconv.Atoi(os.Getenv("COMEDO_PG_PORT")); err == nil {
			cfg.Repository.PostgresPort = p
		}
		cfg.Repository.PostgresUser = os.Getenv("COMEDO_PG_USER")
		cfg.Repository.PostgresPassword = os.Getenv("COMEDO_PG_PASSWORD")
		cfg.Repository.PostgresDB = os.Getenv("COMEDO_PG_DB")
	}
	if os.Getenv("COMEDO_CACHE") == "redis" {
		cfg.Cache.Type = "redis"
		cfg.Cache.RedisAddr = os.Getenv("COMEDO_REDIS_ADDR")
		cfg.Cache.EnableTwoPhase = true
	}
	if v := os.Getenv("COMEDO_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if p, err := strconv.Atoi(os.Getenv("COMEDO_PORT")); err == nil && p > 0 {
		cfg.Server.Port = p
	}

	return cfg
}

// runOnce analyzes a single ingredient list and prints the report.
func runOnce(ctx context.Context, sc *scorer.Scorer, input string, leaveOn bool, formulation string) {
	result := sc.Analyze(ctx, &domain.AnalysisRequest{
		RawText:     input,
		LeaveOn:     leaveOn,
		Formulation: formulation,
	})

	printReport(os.Stdout, result)
}

// runServer starts the HTTP shell and blocks until shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, cfg *domain.Config, catalogs *catalog.Manager, sc *scorer.Scorer, store domain.CatalogStore, resolveCache domain.Cache, engine *modifier.Engine) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	srv := api.NewServer(cfg.Server, catalogs, sc, store, resolveCache, engine, Version)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("comedo is ready",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"catalog_entries", catalogs.Len(),
	)

	fmt.Printf("comedo %s listening on http://%s:%d\n", Version, cfg.Server.Host, cfg.Server.Port)
	fmt.Println("  POST /analyze           - Score an ingredient list")
	fmt.Println("  GET  /catalog           - List catalog entries")
	fmt.Println("  GET  /catalog/resolve   - Resolve one ingredient (?q=)")
	fmt.Println("  POST /catalog/reload    - Re-import the catalog source")
	fmt.Println("  GET  /modifiers         - List custom modifier rules")
	fmt.Println("  POST /modifiers         - Create a custom modifier rule")
	fmt.Println("  POST /modifiers/reload  - Hot-reload modifier rules")
	fmt.Println("  GET  /health            - Health check")

	<-ctx.Done()
	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("comedo shutdown complete")
}
