package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/spindeck/internal/config"
	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/driver"
	"github.com/genricoloni/spindeck/internal/fetcher"
	"github.com/genricoloni/spindeck/internal/monitor"
	"github.com/genricoloni/spindeck/internal/sink"
	"github.com/genricoloni/spindeck/internal/skin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the full dependency graph. Kept as a variable so tests can
// validate it with fx.ValidateApp.
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	fx.Provide(
		newLogger,
		config.NewAppConfig,
		func(cfg *config.AppConfig) domain.Config { return cfg },
		monitor.NewScreenResolution,
		monitor.NewMprisMonitor,
		func(m *monitor.MprisMonitor) domain.Monitor { return m },
		fetcher.NewArtFetcher,
		func(f *fetcher.ArtFetcher) domain.Fetcher { return f },
		sink.New,
		skin.NewHandler,
		driver.NewSmoothedLevels,
		func(s *driver.SmoothedLevels) driver.LevelSource { return s },
		driver.NewCollector,
		func(c *driver.Collector) domain.Snapshots { return c },
		newDriver,
	),

	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	<-ctx.Done()

	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl := os.Getenv("SPINDECK_LOG_LEVEL"); lvl != "" {
		parsed, err := zap.ParseAtomicLevel(lvl)
		if err != nil {
			return nil, err
		}
		cfg.Level = parsed
	}
	return cfg.Build()
}

// newDriver wires the frame driver from configuration
func newDriver(logger *zap.Logger, cfg *config.AppConfig, handler *skin.Handler, source domain.Snapshots) *driver.Driver {
	return driver.New(logger, handler, source, driver.Options{
		FrameRate:          cfg.GetFrameRate(),
		MaxPresentFailures: cfg.GetMaxPresentFailures(),
	})
}

// registerHooks sets up application lifecycle hooks
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	cfg *config.AppConfig,
	res *domain.ScreenResolution,
	mon domain.Monitor,
	collector *driver.Collector,
	handler *skin.Handler,
	drv *driver.Driver,
) {
	// Background goroutines outlive the OnStart context.
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			geom, err := cfg.Geometry(res)
			if err != nil {
				return err
			}
			if err := handler.Load(geom); err != nil {
				return err
			}

			go func() {
				if err := mon.Start(runCtx); err != nil && runCtx.Err() == nil {
					logger.Error("Monitor terminated", zap.Error(err))
				}
			}()
			if err := collector.Start(runCtx); err != nil {
				return err
			}

			go func() {
				if err := drv.Run(runCtx); err != nil {
					logger.Error("Frame loop terminated", zap.Error(err))
				}
			}()

			logger.Info("Spindeck daemon started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			drv.Stop()
			cancel()
			if err := collector.Stop(ctx); err != nil {
				logger.Warn("Collector stop failed", zap.Error(err))
			}
			if err := mon.Stop(ctx); err != nil {
				logger.Warn("Monitor stop failed", zap.Error(err))
			}
			return nil
		},
	})
}
