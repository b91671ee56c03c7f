package main

//
//  @title           taifexpulse API
//  @version         1.0
//  @description     TAIFEX tick resampling & nearby-series service.
//  @termsOfService  https://github.com/guttosm/taifexpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/taifexpulse
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        series
//  @tag.description Endpoints for querying nearby-contract OHLCV series
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/taifexpulse/config"
	_ "github.com/guttosm/taifexpulse/docs" // swagger docs
	"github.com/guttosm/taifexpulse/internal/app"
	"github.com/guttosm/taifexpulse/internal/domain/models"
	"github.com/guttosm/taifexpulse/internal/ingestion"
	"github.com/guttosm/taifexpulse/internal/logger"
	"github.com/guttosm/taifexpulse/internal/resample"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown terminates the HTTP server and runs cleanup when SIGINT
// or SIGTERM arrives.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// buildOptions converts the flag/config surface into ingestion options,
// failing fast on any invalid value.
func buildOptions(class, item, freq, label, session string, parallel int, force bool) (ingestion.Options, error) {
	var opts ingestion.Options

	c, err := models.ParseInstrumentClass(class)
	if err != nil {
		return opts, err
	}
	f, err := resample.ParseFreq(freq)
	if err != nil {
		return opts, err
	}
	l, err := resample.ParseLabel(label)
	if err != nil {
		return opts, err
	}
	s, err := resample.ParseSession(session)
	if err != nil {
		return opts, err
	}

	opts = ingestion.Options{
		Class:    c,
		ItemCode: item,
		Freq:     f,
		Label:    l,
		Session:  s,
		Parallel: parallel,
		Force:    force,
	}
	return opts, nil
}

// main is the entry point of the taifexpulse application.
//
// Modes (selected via --mode flag):
//   - resample: processes every tick archive in the source directory and
//     persists the aggregated bars.
//   - api: starts the REST API serving the nearby-contract series.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	cfg := config.AppConfig.Resample
	mode := flag.String("mode", "resample", "Mode: resample or api")
	dir := flag.String("dir", cfg.SourceDir, "Directory with zipped tick archives")
	class := flag.String("class", cfg.InstrumentClass, "Instrument class: FUTURE or OPTION")
	item := flag.String("item", cfg.ItemCode, "Item code for nearby selection (e.g. TX)")
	freq := flag.String("freq", cfg.Freq, "Resample frequency (D, 15T, 1H, ...)")
	label := flag.String("label", cfg.LabelEdge, "Bucket label edge: left or right")
	session := flag.String("session", cfg.Session, "Trading session: intraday or afterhours")
	parallel := flag.Int("parallel", 0, "How many archives to aggregate concurrently (0/1 = sequential)")
	force := flag.Bool("force", false, "Reprocess archives even if already resampled")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "resample":
		logger.L().Info().Msg("running resample batch")

		opts, err := buildOptions(*class, *item, *freq, *label, *session, *parallel, *force)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("invalid configuration")
		}

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		series, err := ingestion.ProcessDirectory(ctx, *dir, db, opts)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("resample failed")
		}
		logger.L().Info().Int("nearby_bars", len(series)).Msg("resample completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
