// Package server assembles the delivery service: it chooses backends from
// configuration, builds the gin router and runs the HTTP server until a
// shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hos-delivery/internal/config"
	"hos-delivery/internal/delivery"
	"hos-delivery/internal/events"
	"hos-delivery/internal/handler"
	"hos-delivery/internal/locations"
	"hos-delivery/internal/orders"
	"hos-delivery/internal/pricing"
	"hos-delivery/internal/quotecache"
)

// Deps are the collaborators the router serves.
type Deps struct {
	Engine    handler.Engine
	Cache     quotecache.Cache
	Finalizer handler.Finalizer
}

// NewRouter builds the gin engine with middleware and every route mounted.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(recovered), securityHeaders(), cors())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.NewDelivery(d.Engine, d.Cache).Register(r)
	if d.Finalizer != nil {
		handler.NewOrders(d.Finalizer).Register(r)
	}
	return r
}

// App is a fully wired service. Close releases every backend it opened.
type App struct {
	Router  *gin.Engine
	closers []io.Closer
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build wires the engine and its optional backends. Redis, postgres and
// kafka are used only when configured; otherwise in-process fallbacks apply.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{}
	fail := func(err error) (*App, error) {
		_ = app.Close()
		return nil, err
	}

	policy := pricing.Default()
	if cfg.PricingFile != "" {
		p, err := pricing.Load(cfg.PricingFile)
		if err != nil {
			return fail(err)
		}
		policy = p
	}
	engine, err := delivery.New(locations.Nigeria(), policy)
	if err != nil {
		return fail(err)
	}

	var cache quotecache.Cache = quotecache.NewMemory(cfg.CacheSize, cfg.CacheTTL)
	if cfg.RedisURL != "" {
		client, err := quotecache.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fail(err)
		}
		rc := quotecache.NewRedis(client, cfg.CacheTTL)
		app.closers = append(app.closers, rc)
		cache = rc
		log.Printf("quote cache: redis")
	}

	var store orders.Store
	if cfg.DatabaseURL != "" {
		db, err := orders.Connect(ctx, cfg.DatabaseURL, orders.DBOptions{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			return fail(err)
		}
		app.closers = append(app.closers, db)
		s, err := orders.NewSQLStore(ctx, db)
		if err != nil {
			return fail(err)
		}
		store = s
	} else {
		log.Printf("warn: DATABASE_URL not set, order deliveries are kept in memory")
		store = orders.NewMemoryStore()
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		k := events.NewKafka(cfg.KafkaBrokers)
		app.closers = append(app.closers, k)
		publisher = k
	}

	app.Router = NewRouter(Deps{
		Engine:    engine,
		Cache:     cache,
		Finalizer: orders.NewFinalizer(engine, store, publisher),
	})
	return app, nil
}

// Run serves until ctx is done or SIGINT/SIGTERM arrives, then drains
// in-flight requests within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("closing backends: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("delivery service listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
