// Command wte-api serves county reference data and waste-to-energy
// conversion estimates over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/wasteworks/wte-api/internal/httpapi"
	"github.com/wasteworks/wte-api/internal/observability"
	"github.com/wasteworks/wte-api/internal/pathway"
	"github.com/wasteworks/wte-api/internal/refdata"
)

func main() {
	// A .env file is a development convenience; absence is normal.
	_ = godotenv.Load()

	// Bootstrap logger from raw env so configuration errors are visible;
	// replaced once the parsed config settles level and format.
	logger := observability.NewLogger(os.Getenv("WTE_LOG_LEVEL"), os.Getenv("WTE_LOG_FORMAT"))

	cfg, err := parseConfig(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}

	logger = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := refdata.NewStoreWithOverrides(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("reference data failed to load")
	}

	htl, err := pathway.NewHTLConverter(store.SludgeBlend())
	if err != nil {
		logger.Fatal().Err(err).Msg("sludge composition table is unusable")
	}

	converters := httpapi.Converters{
		Fermentation: pathway.NewFermentationConverter(),
		HTL:          htl,
		Combustion:   pathway.NewCombustionConverter(),
		Digestion:    pathway.NewDigestionConverter(),
	}

	metrics := observability.NewMetrics()
	metrics.Ready.Set(1)

	srv := httpapi.NewServer(cfg.ListenAddr, cfg.CORS, store, converters, metrics, clockwork.NewRealClock(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	logger.Info().
		Str("addr", cfg.ListenAddr).
		Str("env", cfg.Env).
		Int("datasets", len(store.Datasets())).
		Msg("wte-api started")

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}

	logger.Info().Msg("shutdown complete")
}
