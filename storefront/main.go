package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"overcooked-storefront/config"
	"overcooked-storefront/ordering/store"
	httpapi "overcooked-storefront/storefront/internal/api/http"
	"overcooked-storefront/storefront/internal/backend"
	"overcooked-storefront/storefront/internal/service"
	"overcooked-storefront/storefront/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("storefront stopped", zap.Error(err))
	}
	logger.Info("storefront stopped")
}

// infra holds the optional connections. Each one stays nil when its host is
// not configured.
type infra struct {
	db     *sql.DB
	redis  *redis.Client
	reader *kafka.Reader
	writer *kafka.Writer
}

func connect(ctx context.Context, cfg config.Config, logger *zap.Logger) infra {
	var deps infra

	if cfg.PostgresDSN() != "" {
		deps.db = config.MustInitPostgres(cfg, logger)
		if err := storage.NewPostgresRepository(deps.db).EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to ensure schema", zap.Error(err))
		}
		logger.Info("order history read from postgres", zap.String("host", cfg.DBHost))
	}

	if cfg.RedisAddr() != "" {
		deps.redis = config.MustInitRedis(cfg, logger)
		logger.Info("catalog cached in redis", zap.String("addr", cfg.RedisAddr()))
	}

	if cfg.KafkaBroker != "" {
		deps.reader = config.NewKafkaReader(cfg)
		deps.writer = config.NewKafkaWriter(cfg)
		logger.Info("order status feed enabled",
			zap.String("broker", cfg.KafkaBroker),
			zap.String("topic", cfg.OrderStatusTopic))
	}

	return deps
}

func (d infra) Close(logger *zap.Logger) {
	if d.reader != nil {
		if err := d.reader.Close(); err != nil {
			logger.Warn("failed to close kafka reader", zap.Error(err))
		}
	}
	if d.writer != nil {
		if err := d.writer.Close(); err != nil {
			logger.Warn("failed to close kafka writer", zap.Error(err))
		}
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
}

type app struct {
	store    *store.Store
	handler  http.Handler
	catalog  *service.CatalogService
	consumer *service.Consumer
}

func newApp(cfg config.Config, logger *zap.Logger, deps infra) (*app, error) {
	st := store.New(store.WithLogger(logger))
	st.Subscribe(func(s *store.State) {
		logger.Debug("state changed", zap.Uint64("version", s.Version()), zap.Bool("loading", s.Loading()))
	})

	client := backend.NewClient(cfg.BackendURL, &http.Client{Timeout: cfg.UpstreamTimeout}, logger)

	var cache service.CatalogCache
	if deps.redis != nil {
		cache = storage.NewRedisCache(deps.redis, cfg.CatalogCacheTTL)
	}
	var history service.OrderHistoryRepository
	if deps.db != nil {
		history = storage.NewPostgresRepository(deps.db)
	}
	var publisher service.StatusPublisher
	if deps.writer != nil {
		publisher = storage.NewKafkaPublisher(deps.writer)
	}

	sessions := service.NewSessionService(client, st, logger)
	catalog := service.NewCatalogService(client, cache, st, logger)
	orders := service.NewOrderService(client, history, publisher, sessions, st, service.OrderConfig{
		Retries: cfg.OrderSubmitRetries,
		Backoff: cfg.OrderRetryBackoff,
	}, logger)

	handler := &httpapi.Handler{
		Store:   st,
		Session: sessions,
		Catalog: catalog,
		Cart:    service.NewCartService(st),
		Orders:  orders,
		Menu:    service.NewMenuService(client, catalog, sessions, st, logger),
		QR:      service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		Logger:  logger,
	}

	authz, err := httpapi.NewAuthorizer(st, logger)
	if err != nil {
		return nil, err
	}

	a := &app{
		store:   st,
		handler: httpapi.NewRouter(handler, authz, cfg.CORSAllowOrigins),
		catalog: catalog,
	}
	if deps.reader != nil {
		a.consumer = service.NewConsumer(deps.reader, orders, logger)
	}
	return a, nil
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	deps := connect(ctx, cfg, logger)
	defer deps.Close(logger)

	a, err := newApp(cfg, logger, deps)
	if err != nil {
		return err
	}
	srv := httpapi.NewServer(":"+cfg.Port, a.handler, cfg.UpstreamTimeout)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("storefront starting", zap.String("addr", srv.Addr), zap.String("backend", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if _, err := a.catalog.Refresh(gctx, false); err != nil && gctx.Err() == nil {
			logger.Warn("initial catalog load failed", zap.Error(err))
		}
		return nil
	})

	if a.consumer != nil {
		g.Go(func() error {
			return a.consumer.Start(gctx)
		})
	}

	return g.Wait()
}
