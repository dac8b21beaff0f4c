package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"

	"github.com/deccantrails/tourbooker/internal/cache"
	"github.com/deccantrails/tourbooker/internal/catalog"
	"github.com/deccantrails/tourbooker/internal/config"
	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/guard"
	"github.com/deccantrails/tourbooker/internal/handler"
	"github.com/deccantrails/tourbooker/internal/middleware"
	"github.com/deccantrails/tourbooker/internal/notification"
	"github.com/deccantrails/tourbooker/internal/repository"
	"github.com/deccantrails/tourbooker/internal/router"
	"github.com/deccantrails/tourbooker/internal/safety"
	"github.com/deccantrails/tourbooker/internal/scheduler"
	"github.com/deccantrails/tourbooker/internal/service"
)

const migrationsDir = "migrations"

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	redis      *redis.Client
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"tourbooker",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	if err = app.runMigrations(); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if err = app.initDB(); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	if err = app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	if a.cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err := a.redis.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("pinging redis: %w", err)
		}
		a.log.Info("redis connected", logger.String("addr", a.cfg.Redis.Addr))
	}

	return nil
}

func (a *App) initServices() error {
	idx := catalog.NewIndex()
	entities, err := catalog.FileSource{Path: a.cfg.Catalog.DataFile}.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err = idx.Replace(entities); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}
	a.log.Info("catalog loaded", logger.Int("entities", len(entities)))

	zones, err := safety.LoadZones(a.cfg.Catalog.SafetyFile)
	if err != nil {
		return fmt.Errorf("load safety zones: %w", err)
	}
	safetyLookup := safety.NewLookup(zones)
	a.log.Info("safety zones loaded", logger.Int("zones", len(zones)))

	bookingRepo := repository.NewBookingRepo(a.db)
	scheduleRepo := repository.NewScheduleRepo(a.db)

	n, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.OpsChatID, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	clock := service.SystemClock{}
	locks := guard.NewKeyedLimiter(a.cfg.Booking.LockTimeout)
	searchCache := cache.NewSearchCache(a.redis, a.cfg.Redis.CacheTTL, a.log)

	weights, err := a.cfg.Ranking.Weights()
	if err != nil {
		return fmt.Errorf("ranking config: %w", err)
	}

	discoveryService := service.NewDiscoveryService(
		idx, scheduleRepo, safetyLookup, searchCache, clock,
		a.cfg.Ranking.MaxRadiusMeters,
		weights,
		a.cfg.Availability.HorizonDays,
		a.log,
	)
	bookingService := service.NewBookingService(
		bookingRepo, scheduleRepo, idx, locks, n, clock,
		domain.RefundPolicy{
			Cutoff:        a.cfg.Booking.RefundCutoff,
			BeforePercent: a.cfg.Booking.RefundBeforePercent,
			AfterPercent:  a.cfg.Booking.RefundAfterPercent,
		},
		a.cfg.Booking.PendingTTL,
		a.log,
	)

	a.scheduler = scheduler.New(
		bookingService,
		a.cfg.Scheduler.Interval,
		a.log,
	)

	h := handler.NewHandler(discoveryService, bookingService)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.NewRateLimiter(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst).Limit(),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}

	if err := a.db.Master.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
