package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/turkcell/product-service/api"
	"github.com/turkcell/product-service/api/health"
	apiproduct "github.com/turkcell/product-service/api/product"
	appproduct "github.com/turkcell/product-service/application/product"
	"github.com/turkcell/product-service/config"
	"github.com/turkcell/product-service/domain/product"
	"github.com/turkcell/product-service/infrastructure/persistence/memory"
	"github.com/turkcell/product-service/infrastructure/persistence/mysql"
	"github.com/turkcell/product-service/infrastructure/persistence/retry"
	"github.com/turkcell/product-service/pkg/logger"

	"go.uber.org/zap"
)

// App owns the HTTP server and its wired dependencies.
type App struct {
	config *config.Config
	server *http.Server
}

// NewApp loads configuration, initializes logging, selects the
// repository implementation, and wires services, controllers and routes.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var repo product.Repository
	var sqlDB *sql.DB

	switch cfg.Database.Type {
	case "mysql":
		dbConfig := &mysql.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Username:        cfg.Database.Username,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Log.Level,
		}
		db, err := dbConfig.Connect()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		sqlDB, err = db.DB()
		if err != nil {
			return nil, fmt.Errorf("unwrap database handle: %w", err)
		}
		if cfg.IsDevelopment() {
			if err := mysql.AutoMigrate(db); err != nil {
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		productRepo := mysql.NewProductRepository(db)
		productRepo.SetRetryConfig(retry.FromAppConfig(cfg))
		repo = productRepo
	case "memory", "":
		logger.Info("Using in-memory persistence")
		repo = memory.NewProductRepository()
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Database.Type)
	}

	commandService := appproduct.NewCommandService(repo)
	queryService := appproduct.NewQueryService(repo)

	healthController := health.NewController(cfg, sqlDB)
	productController := apiproduct.NewController(commandService, queryService)

	router := api.NewRouter(cfg, healthController, productController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{config: cfg, server: server}, nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests within
// the configured shutdown timeout.
func (a *App) Run() error {
	errChan := make(chan error, 1)

	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("env", a.config.App.Env),
		)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
	return nil
}
