package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/config"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/holiday"
	httptransport "github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/http"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/logging"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/persistence/sqlite"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/session"
)

func main() {
	configPath := flag.String("config", "markdays.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logWriter, logCloser := logging.NewWriter(logging.RotatingFileOptions{
		Path:       cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer logCloser.Close()
	logger := logging.NewLogger(logWriter, slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := sqlite.NewConnectionPool(sqlite.DefaultConfig(cfg.SQLiteDSN))
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	holidays := holiday.NewJapaneseCalendar()
	if cfg.HolidayCSVPath != "" {
		entries, err := holiday.LoadCabinetOfficeCSVFile(cfg.HolidayCSVPath, logger)
		if err != nil {
			logger.Error("failed to load holiday CSV", "path", cfg.HolidayCSVPath, "error", err)
			os.Exit(1)
		}
		holidays.Override(entries)
		logger.Info("holiday CSV applied", "path", cfg.HolidayCSVPath, "entries", len(entries))
	}

	now := time.Now
	store := session.NewStore(cfg.SessionTTL.Std(), cfg.SessionMaxEntries, now, nil, holidays)

	settingsRepo := sqlite.NewSettingsRepository(pool, now)
	documentRepo := sqlite.NewDocumentRepository(pool, now)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Sessions: httptransport.NewSessionHandler(store, documentRepo, now, logger),
		Generate: httptransport.NewGenerateHandler(holidays, logger),
		Holidays: httptransport.NewHolidayHandler(holidays, logger),
		Settings: httptransport.NewSettingsHandler(settingsRepo, logger),
		Health:   pool,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.BasicAuth(cfg.Auth.Username, cfg.Auth.PasswordHash, logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("markdays API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
