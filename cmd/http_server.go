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

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/audit"
	auditPostgres "github.com/cloudmorphix/console/internal/audit/postgres"
	"github.com/cloudmorphix/console/internal/auth"
	authPostgres "github.com/cloudmorphix/console/internal/auth/postgres"
	"github.com/cloudmorphix/console/internal/company"
	companyPostgres "github.com/cloudmorphix/console/internal/company/postgres"
	"github.com/cloudmorphix/console/internal/contact"
	contactPostgres "github.com/cloudmorphix/console/internal/contact/postgres"
	"github.com/cloudmorphix/console/internal/core/events"
	"github.com/cloudmorphix/console/internal/dashboard"
	"github.com/cloudmorphix/console/internal/invite"
	invitePostgres "github.com/cloudmorphix/console/internal/invite/postgres"
	"github.com/cloudmorphix/console/internal/role"
	rolePostgres "github.com/cloudmorphix/console/internal/role/postgres"
	"github.com/cloudmorphix/console/internal/transport/rest"
	"github.com/cloudmorphix/console/internal/user"
	userPostgres "github.com/cloudmorphix/console/internal/user/postgres"
	"github.com/cloudmorphix/console/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

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
	ORM    *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger

	eventBus := events.NewEventBus(lg)

	// Repositories share one underlying *sql.DB through gorm.
	accountRepo := authPostgres.NewRepository(deps.ORM)
	companyRepo := companyPostgres.NewCompanyRepository(deps.ORM)
	roleRepo := rolePostgres.NewRoleRepository(deps.ORM)
	userRepo := userPostgres.NewUserRepository(deps.ORM)
	inviteRepo := invitePostgres.NewInviteRepository(deps.ORM)
	auditRepo := auditPostgres.NewAuditRepository(deps.ORM)
	contactRepo := contactPostgres.NewContactRepository(deps.ORM)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(accountRepo, tokenGen, cfg.Security.BCryptCost)
	provisioner := auth.NewProvisioner(accountRepo, cfg.Security.BCryptCost)
	resolver := auth.NewResolver(accountRepo, lg)

	auditService := audit.NewService(auditRepo, lg)
	auditService.SubscribeTo(eventBus)

	companyService := company.NewService(companyRepo, provisioner, eventBus, lg)
	roleService := role.NewService(roleRepo, eventBus, lg)
	userService := user.NewService(userRepo, roleRepo, provisioner, eventBus, lg)
	inviteService := invite.NewService(inviteRepo, roleRepo, companyRepo, provisioner, eventBus, lg)
	contactService := contact.NewService(contactRepo, lg)
	dashboardService := dashboard.NewService(userRepo, companyRepo, dashboard.Config{
		RetryOnPermissionDenied: cfg.Dashboard.RetryOnPermissionDenied,
		RetryAttempts:           cfg.Dashboard.RetryAttempts,
		RetryDelay:              cfg.Dashboard.RetryDelay,
	}, lg)

	handlers := rest.Handlers{
		Auth:      auth.NewHandler(authService, resolver),
		Company:   company.NewHandler(companyService),
		Role:      role.NewHandler(roleService),
		User:      user.NewHandler(userService),
		Invite:    invite.NewHandler(inviteService),
		Audit:     audit.NewHandler(auditService),
		Contact:   contact.NewHandler(contactService),
		Dashboard: dashboard.NewHandler(dashboardService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, cfg.Server.AllowedOrigins, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithFormat(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	orm, err := initORM(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		ORM:    orm,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initORM layers gorm over the already-open connection so both handles share
// one pool.
func initORM(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
