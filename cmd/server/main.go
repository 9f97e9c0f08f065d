package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"                               // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"             // Echo built-in middleware
	"github.com/prometheus/client_golang/prometheus"            // Metrics registry
	"github.com/prometheus/client_golang/prometheus/collectors" // Go runtime and process collectors
	"golang.org/x/sync/errgroup"                                // Runs server and workers together

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/database"
	"github.com/iliyamo/cinema-seat-booking/internal/handler"
	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/metrics"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/router"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatalf(context.Background(), "config: %v", err)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Mode: cfg.Log.Mode, Encoding: cfg.Log.Encoding})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM) // Cancelled on Ctrl-C or SIGTERM
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatalf(ctx, "server: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	// Static catalog problems are the only failures that stop the process.
	catalog := repository.NewCatalogRepo(repository.DefaultCatalog())
	if err := catalog.Validate(); err != nil {
		return err
	}

	users := repository.NewUserRepo()
	for _, u := range repository.DefaultUsers() {
		if err := users.Create(u, cfg.SeedPassword, cfg.BcryptCost); err != nil {
			return err
		}
	}
	sessions := repository.NewSessionRepo() // In-memory sign-in sessions

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	switch {
	case errors.Is(err, config.ErrRedisDisabled):
		log.Info(ctx, "redis disabled; cache and rate limit off")
	case err != nil:
		log.Warnf(ctx, "redis unavailable at %s: %v; cache and rate limit off", cfg.Redis.Addr, err)
	default:
		defer func() { _ = rdb.Close() }()
	}

	var archive service.BookingArchive
	if cfg.DB.Enabled {
		db, err := database.Open(ctx, cfg.DB)
		if err != nil {
			log.Warnf(ctx, "booking archive disabled: %v", err)
		} else {
			defer func() { _ = db.Close() }()
			repo := repository.NewBookingArchiveRepo(db)
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Warnf(ctx, "booking archive disabled: %v", err)
			} else {
				archive = repo
			}
		}
	}

	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.AMQP.Enabled {
		publisher = queue.NewAMQPPublisher(cfg.AMQP.URL)
	}

	clock := service.SystemClock{}
	rng := service.NewRandom(cfg.RandomSeed)
	store := service.NewStore(catalog)

	seating := service.NewSeatingService(store, rng, m, log)
	showtimes := service.NewShowtimeService(store, seating, rng, clock, cfg.Location(), m, log)
	bookings := service.NewBookingService(store, clock, archive, publisher, m, log)
	groupPay := service.NewGroupPayService(store, bookings, clock, cfg.GroupPayTTL, m, log)
	lottery := service.NewUpgradeLottery(store, rng, clock, archive, publisher, m, log)
	coupons := service.NewCouponService(store)
	auth := service.NewAuthService(users, sessions, clock, cfg.JWTSecret, cfg.AccessTTL, log)

	e := echo.New()     // Create Echo instance
	e.HideBanner = true // Startup is logged through zap
	e.HidePort = true
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(log), middleware.Metrics(m))

	jwt := middleware.JWTAuth(cfg.JWTSecret, auth)
	optionalJWT := middleware.OptionalJWTAuth(cfg.JWTSecret, auth)
	limit := middleware.TokenBucket(cfg.RateLimit, rdb, log)
	cache := middleware.ResponseCache(cfg.Cache, rdb, log)

	router.RegisterRoutes(e, reg) // Health and metrics
	router.RegisterAuth(e, handler.NewAuthHandler(auth), jwt)
	router.RegisterPublic(e, handler.NewBrowseHandler(catalog, showtimes), handler.NewSeatingHandler(seating, coupons), cache)
	router.RegisterCustomer(e, handler.NewBookingHandler(bookings, coupons), handler.NewGroupPayHandler(groupPay, auth), jwt, optionalJWT, limit)
	router.RegisterOwner(e, handler.NewAdminHandler(lottery), jwt)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port // Address string with port
		log.Infof(gctx, "listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return service.NewLotteryScheduler(lottery, cfg.LotteryInterval, log).Run(gctx)
	})
	if cfg.AMQP.Enabled {
		consumer := queue.NewConsumer(cfg.AMQP.URL, cfg.AMQP.LogDir, log)
		g.Go(func() error {
			if err := consumer.Run(gctx); err != nil && gctx.Err() == nil {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}
