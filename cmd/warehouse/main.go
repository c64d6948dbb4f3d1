package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/warehouse/gateway"
	"github.com/example/warehouse/pkg/config"
	"github.com/example/warehouse/pkg/models"
	"github.com/example/warehouse/pkg/store"
	"github.com/example/warehouse/pkg/warehouse"
	"go.uber.org/zap"
)

func main() {
	configPath := "config/warehouse.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting warehouse service",
		zap.String("address", cfg.Server.Addr()),
		zap.String("snapshot", cfg.Data.SnapshotPath))

	// Build the catalog and load the last snapshot, if any
	st := store.New()
	if err := st.LoadFile(cfg.Data.SnapshotPath); err != nil {
		logger.Fatal("Failed to load snapshot", zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.Int("products", len(st.Products())),
		zap.Int("orders", len(st.Orders())))

	// Seed the catalog on first run
	if len(st.Products()) == 0 && len(cfg.Seed) > 0 {
		for _, seed := range cfg.Seed {
			st.AddProduct(&models.Product{
				Name:  seed.Name,
				Price: seed.Price,
				Stock: seed.Stock,
			})
		}
		logger.Info("Catalog seeded", zap.Int("products", len(cfg.Seed)))
	}

	engine := warehouse.New(st, logger)

	// Create gateway
	gw := gateway.NewGateway(cfg, logger, st, engine)
	gw.SetupRoutes()

	// Start gateway in goroutine
	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-gwErr:
		logger.Fatal("Gateway error", zap.Error(err))
	}

	// Persist the catalog before exit
	if err := st.SaveFile(cfg.Data.SnapshotPath); err != nil {
		logger.Error("Failed to save snapshot", zap.Error(err))
	} else {
		logger.Info("Snapshot saved", zap.String("path", cfg.Data.SnapshotPath))
	}

	logger.Info("Service stopped")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	if cfg.Encoding != "" {
		zcfg.Encoding = cfg.Encoding
	}
	if len(cfg.OutputPaths) > 0 {
		zcfg.OutputPaths = cfg.OutputPaths
	}
	return zcfg.Build()
}
