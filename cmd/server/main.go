package main

import (
	"os"

	"co2board/internal/api"
	"co2board/internal/config"
	"co2board/internal/engine"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgPath  string
	dataPath string
	addr     string
)

func main() {
	root := &cobra.Command{
		Use:           "co2board",
		Short:         "CO2 emissions dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          run,
	}
	root.Flags().StringVar(&cfgPath, "config", "co2board.yaml", "path to config file")
	root.Flags().StringVar(&dataPath, "data", "", "path to the emissions CSV (overrides config)")
	root.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))

	// Handler starts with a nil store: the API is live immediately and
	// answers 503 until the background load publishes the dataset.
	h := api.NewHandler(nil, cfg.Data.TopRegions)
	h.RegisterRoutes(e)

	go func() {
		logger.Info("starting dataset load", zap.String("path", cfg.Data.Path))
		store, err := engine.Load(cfg.Data.Path, logger)
		if err != nil {
			logger.Fatal("dataset load failed", zap.Error(err))
		}
		h.SetStore(store)
		logger.Info("dataset ready",
			zap.String("dataset_id", store.ID),
			zap.Int("records", len(store.Records)))
	}()

	logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
	return e.Start(cfg.Server.Addr)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
