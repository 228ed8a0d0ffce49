// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tourdesk-service/internal/config"
	"tourdesk-service/internal/db"
	authHandler "tourdesk-service/internal/handlers/auth"
	bookingHandler "tourdesk-service/internal/handlers/booking"
	customerHandler "tourdesk-service/internal/handlers/customer"
	dashboardHandler "tourdesk-service/internal/handlers/dashboard"
	systemHandler "tourdesk-service/internal/handlers/system"
	tourHandler "tourdesk-service/internal/handlers/tour"
	userHandler "tourdesk-service/internal/handlers/user"
	"tourdesk-service/internal/middleware"
	"tourdesk-service/internal/pkg/jwt"
	"tourdesk-service/internal/pkg/metrics"
	"tourdesk-service/internal/pkg/session"
	"tourdesk-service/internal/repository/postgres"
	accountUsecase "tourdesk-service/internal/service/account"
	authUsecase "tourdesk-service/internal/service/auth"
	bookingUsecase "tourdesk-service/internal/service/booking"
	customerUsecase "tourdesk-service/internal/service/customer"
	dashboardUsecase "tourdesk-service/internal/service/dashboard"
	tourUsecase "tourdesk-service/internal/service/tour"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const version = "1.0.0"

type Server struct {
	cfg      config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	registry *prometheus.Registry

	httpServer *http.Server
	pool       *pgxpool.Pool
	redis      *redis.Client
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Server{
		cfg:      cfg,
		engine:   gin.New(),
		logger:   logger,
		registry: registry,
	}
}

// Start wires every dependency and serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	// ----- Migrations -----
	if s.cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			return err
		}
	}

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, db.PostgresConfig{
		URL:             s.cfg.DatabaseURL,
		MaxConns:        20,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool
	s.logger.Info("connected to PostgreSQL")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redis = redisClient
	s.logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Metrics & Sessions -----
	m := metrics.New("tourdesk", s.registry)
	sessionManager := session.NewManager(redisClient, s.logger)

	// ----- Repositories -----
	customerRepo := postgres.NewCustomerRepository(pool)
	tourRepo := postgres.NewTourRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	authRepo := postgres.NewAuthRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	// ----- Services (Usecases) -----
	authService := authUsecase.NewAuthService(
		authRepo,
		jwtManager,
		sessionManager,
		authUsecase.SessionConfig{
			BrowserTTL:  s.cfg.BrowserSessionTTL,
			RememberTTL: s.cfg.RememberSessionTTL,
		},
		m,
		s.logger,
	)
	accountService := accountUsecase.NewAccountService(authRepo, sessionManager, s.logger)
	customerService := customerUsecase.NewCustomerService(customerRepo, s.cfg.Location, m, s.logger)
	tourService := tourUsecase.NewTourService(tourRepo, s.logger)
	bookingService := bookingUsecase.NewBookingService(bookingRepo, m, s.logger)
	dashboardService := dashboardUsecase.NewDashboardService(
		dashboardRepo,
		dashboardUsecase.NewMoneyFormatter(s.cfg.CurrencySymbol),
		m,
		s.logger,
	)

	// ----- Initialize Superuser -----
	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := accountService.EnsureSuperuser(bootCtx, s.cfg.SuperAdminUsername, s.cfg.SuperAdminPassword, s.cfg.SuperAdminEmail); err != nil {
		// Don't fail startup, just log the error
		s.logger.Error("failed to initialize superuser", zap.Error(err))
	}
	cancel()

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler: authHandler.NewAuthHandler(authService, authHandler.CookieConfig{
			Name:   s.cfg.CookieName,
			Domain: s.cfg.CookieDomain,
			Secure: s.cfg.CookieSecure,
		}, s.logger),
		CustomerHandler:  customerHandler.NewCustomerHandler(customerService),
		TourHandler:      tourHandler.NewTourHandler(tourService),
		BookingHandler:   bookingHandler.NewBookingHandler(bookingService),
		UserHandler:      userHandler.NewUserHandler(accountService),
		DashboardHandler: dashboardHandler.NewDashboardHandler(dashboardService),
		SystemHandler: systemHandler.NewSystemHandler(version, map[string]systemHandler.Check{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		}),
		AuthMiddleware: middleware.NewAuthMiddleware(authService, s.cfg.CookieName),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(s.logger),
		middleware.LoggingMiddleware(s.logger),
		middleware.MetricsMiddleware(m),
		middleware.CORSMiddleware(s.cfg.CORSOrigins...),
	)

	// ----- Router -----
	SetupRouter(s.engine, s.registry, handlers)

	// ----- Start HTTP -----
	s.httpServer = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr), zap.String("env", s.cfg.Env))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the pools.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return errors.Join(errs...)
}

func (s *Server) migrate() error {
	migrator, err := db.NewMigrator(s.cfg.DatabaseURL, s.cfg.MigrationsPath, s.logger)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
