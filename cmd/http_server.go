package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/auth"
	authPostgres "github.com/worktrack/backend/internal/auth/postgres"
	"github.com/worktrack/backend/internal/core/events"
	"github.com/worktrack/backend/internal/customer"
	customerPostgres "github.com/worktrack/backend/internal/customer/postgres"
	"github.com/worktrack/backend/internal/material"
	materialPostgres "github.com/worktrack/backend/internal/material/postgres"
	"github.com/worktrack/backend/internal/order"
	orderPostgres "github.com/worktrack/backend/internal/order/postgres"
	"github.com/worktrack/backend/internal/transport/rest"
	"github.com/worktrack/backend/internal/transport/swagger"
	"github.com/worktrack/backend/internal/user"
	userPostgres "github.com/worktrack/backend/internal/user/postgres"
	"github.com/worktrack/backend/pkg/logger"
)

const openapiPath = "./api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment, config.Logging.Level)
	log := logger.L()

	if err := swagger.ValidateSpec(context.Background(), openapiPath); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the sqlx connection pool instead of opening its own
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(log)
	eventBus.Subscribe(events.EventTypeOrderStatusChanged, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.OrderStatusChangedEvent)
		if !ok {
			return nil
		}
		log.Info("order status changed",
			"event_id", e.EventID(),
			"order_id", e.OrderID,
			"previous_status", e.PreviousStatus,
			"new_status", e.NewStatus,
			"changed_by", e.ChangedByID,
		)
		return nil
	})

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.TokenDuration)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, config.Security.BCryptCost)

	userRepo := userPostgres.NewUserRepository(gormDB)
	customerRepo := customerPostgres.NewCustomerRepository(gormDB)
	materialRepo := materialPostgres.NewMaterialRepository(gormDB)
	orderRepo := orderPostgres.NewOrderRepository(gormDB)

	userService := user.NewService(userRepo, authService, log)
	customerService := customer.NewService(customerRepo, log)
	materialService := material.NewService(materialRepo, log)
	orderService := order.NewService(orderRepo, userRepo, customerRepo, materialRepo, eventBus, log)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		db.DB,
		config.Server.AllowedOrigins,
		auth.NewHandler(authService),
		order.NewHandler(orderService),
		user.NewHandler(userService),
		customer.NewHandler(customerService),
		material.NewHandler(materialService),
		log,
	)

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		Router: router,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
