package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tripmind/backend"
	"tripmind/config"
	"tripmind/db"
	"tripmind/middleware"
	"tripmind/mq"
	"tripmind/printout"
	"tripmind/ratelim"
	"tripmind/rdx"
	"tripmind/routes"
	"tripmind/trips"
)

// checkStartup logs how the config was sourced and refuses the placeholder
// JWT secret outside development.
func checkStartup(cfg *config.Config, logger *zap.Logger) error {
	if !cfg.EnvFileLoaded {
		logger.Info("no .env file found; using system environment")
	}
	if err := cfg.CheckJWTSecret(); err != nil {
		logger.Error("refusing to start", zap.Error(err))
		return err
	}
	if cfg.InsecureJWTSecret() {
		logger.Warn("JWT_SECRET is the default; tokens are forgeable", zap.Bool("development", cfg.Development))
	}
	return nil
}

func serve(cfg *config.Config, logger *zap.Logger) error {
	if err := checkStartup(cfg, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer database.Close(context.Background())

	store := db.NewTripStore(database.TripsCollection)
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warn("ensure trip indexes", zap.Error(err))
	}

	// Redis is optional: without it plans are not cached and events only logged.
	var (
		kv  rdx.KV
		pub mq.Publisher
		rc  *redis.Client
	)
	if rc, err = rdx.Connect(ctx, cfg.RedisURL, cfg.RedisPass); err != nil {
		logger.Warn("redis unavailable, running without cache and events", zap.Error(err))
	} else {
		defer rc.Close()
		kv = rdx.NewKV(rc)
		pub = mq.NewRedisPublisher(rc)
	}

	auth := middleware.NewAuth(cfg.JWTSecret)
	rateLimiter := ratelim.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	h := trips.NewHandler(trips.Deps{
		Store:     store,
		Planner:   backend.NewClient(cfg.BackendURL, nil),
		Cache:     rdx.NewPlanCache(kv, cfg.PlanTTL, logger.Named("plancache")),
		Events:    mq.NewEmitter(pub, logger.Named("events")),
		Printer:   printout.New(cfg.PDFFont),
		PublicURL: cfg.PublicURL,
		Logger:    logger.Named("trips"),
	})

	router := httprouter.New()
	routes.RoutesWrapper(router, h, auth, rateLimiter)

	// request logging → security headers → CORS → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)
	handler := middleware.RequestLogger(logger.Named("http"))(middleware.SecurityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if rc != nil {
		worker := mq.NewWorker(logger.Named("worker"), nil)
		g.Go(func() error { return worker.Subscribe(gctx, rc) })
	}
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := rateLimiter.Sweep(); n > 0 {
					logger.Debug("rate limiter sweep", zap.Int("removed", n))
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped cleanly")
	return nil
}
