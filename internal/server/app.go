// Package server initializes and runs the PromiseKeeper server: it opens the
// store, wires the optional cache, archive and metrics integrations, and
// serves the HTTP and gRPC front ends until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/cryptox"
	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	"github.com/dmitrijs2005/promisekeeper/internal/server/archive"
	"github.com/dmitrijs2005/promisekeeper/internal/server/cache"
	"github.com/dmitrijs2005/promisekeeper/internal/server/collaborator"
	"github.com/dmitrijs2005/promisekeeper/internal/server/config"
	"github.com/dmitrijs2005/promisekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/promisekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/promisekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/promisekeeper/internal/server/services"

	gs "github.com/dmitrijs2005/promisekeeper/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	promises *services.PromiseService
	reframe  *services.ReframeService
	closers  []func(context.Context) error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (_ *App, err error) {
	app := &App{config: c, logger: logger}
	defer func() {
		if err != nil {
			app.close(context.Background())
		}
	}()

	hasher, err := cryptox.NewHasher(c.FingerprintAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	app.closers = append(app.closers, func(context.Context) error { return db.Close() })

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migrations error: %w", err)
	}

	recorder := metrics.Nop()
	if c.MetricsEndpoint != "" {
		mp, err := metrics.NewOTLPProvider(ctx, c.MetricsEndpoint, c.MetricsInsecure, c.MetricsInterval)
		if err != nil {
			return nil, fmt.Errorf("metrics init error: %w", err)
		}
		app.closers = append(app.closers, mp.Shutdown)
		if recorder, err = metrics.NewRecorder(mp); err != nil {
			return nil, fmt.Errorf("metrics init error: %w", err)
		}
	}

	var solutionCache cache.SolutionCache = cache.Nop{}
	if c.RedisAddr != "" {
		rc := cache.NewRedisCache(c.RedisAddr, c.RedisPassword, c.RedisDB, c.SolutionCacheTTL, logger)
		if err := rc.Ping(ctx); err != nil {
			// the cache only saves collaborator calls; run without it
			logger.Warn(ctx, "redis unavailable, solution cache degraded", "addr", c.RedisAddr, "error", err)
		}
		app.closers = append(app.closers, func(context.Context) error { return rc.Close() })
		solutionCache = rc
	}

	var archiver archive.Archiver = archive.Nop{}
	if c.S3Bucket != "" {
		a, err := archive.NewS3Archiver(ctx, archive.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Prefix:       c.S3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		archiver = a
	}

	gemini := collaborator.NewGeminiClient(collaborator.GeminiConfig{
		APIKey:        c.GeminiAPIKey,
		Model:         c.GeminiModel,
		BaseURL:       c.GeminiBaseURL,
		Timeout:       c.CollaboratorTimeout,
		RatePerSecond: c.CollaboratorRate,
		Burst:         c.CollaboratorBurst,
	}, logger)
	formatter := collaborator.NewFormatter(gemini, logger)

	opts := []services.Option{
		services.WithLogger(logger),
		services.WithMetrics(recorder),
		services.WithHasher(hasher),
		services.WithSolutionCache(solutionCache),
		services.WithArchiver(archiver),
		services.WithKeepParticipants(c.KeepParticipants),
	}
	app.promises = services.NewPromiseService(db, rm, formatter, opts...)
	app.reframe = services.NewReframeService(app.promises, formatter, opts...)

	if c.GeminiAPIKey == "" {
		logger.Warn(ctx, "GEMINI_API_KEY is not set; collaborator replies will be errors")
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.promises, app.reframe)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.promises, app.reframe, app.db)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// close releases resources in reverse order of acquisition.
func (app *App) close(ctx context.Context) {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i](ctx))
	}
	app.closers = nil
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(ctx, "shutdown", "error", err)
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or a
// listener fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app.close(shutdownCtx)

	app.logger.Info(shutdownCtx, "App stopped")
}
