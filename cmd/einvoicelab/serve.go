package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/klauspost/compress/gzhttp"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	authApp "github.com/davicafu/einvoicelab/internal/auth/application"
	authDomain "github.com/davicafu/einvoicelab/internal/auth/domain"
	authHttp "github.com/davicafu/einvoicelab/internal/auth/infra/inbound/http"
	"github.com/davicafu/einvoicelab/internal/config"
	invoiceApp "github.com/davicafu/einvoicelab/internal/invoice/application"
	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/invoice/generator"
	invoiceEvents "github.com/davicafu/einvoicelab/internal/invoice/infra/inbound/events"
	invoiceHttp "github.com/davicafu/einvoicelab/internal/invoice/infra/inbound/http"
	"github.com/davicafu/einvoicelab/internal/invoice/infra/outbound/analytics/clickhouse"
	"github.com/davicafu/einvoicelab/internal/invoice/infra/outbound/memory"
	sharedDomain "github.com/davicafu/einvoicelab/internal/shared/domain"
	sharedEvents "github.com/davicafu/einvoicelab/internal/shared/infra/events"
	"github.com/davicafu/einvoicelab/internal/shared/infra/http/middleware"
	sharedBus "github.com/davicafu/einvoicelab/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/einvoicelab/internal/shared/infra/platform/cache"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/db/mongodb"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/db/postgres"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/einvoicelab/internal/shared/infra/relayer"
	sharedUtils "github.com/davicafu/einvoicelab/internal/shared/infra/utils"
	"github.com/davicafu/einvoicelab/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			logger.Init(cfg.LogLevel)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg, logger.Logger())
		},
	}
}

// cacheCounter es la caché que además sirve de contador para el rate limit.
type cacheCounter interface {
	sharedCache.Cache
	sharedCache.Counter
}

// app agrupa lo que necesita el servidor HTTP y lo que hay que cerrar al salir.
type app struct {
	engine  *gin.Engine
	handler http.Handler
	service *invoiceApp.InvoiceService
	closers []func()
}

func (a *app) Close() {
	// En orden inverso a la creación.
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func runServer(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("failed to start server", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	log.Info("🛑 Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildApp conecta todas las piezas. ctx controla la vida de los workers y consumidores.
func buildApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	ctx, cancel := context.WithCancel(ctx)
	a := &app{}
	fail := func(err error) (*app, error) {
		cancel()
		a.Close()
		return nil, err
	}

	// ---------------- Cache ----------------
	cache := newCache(ctx, cfg, log)
	switch c := cache.(type) {
	case *sharedCache.InMemoryCache:
		a.closers = append(a.closers, c.Stop)
	case *sharedCache.RedisCache:
		a.closers = append(a.closers, func() { _ = c.Close() })
	}

	// ---------------- Outbox ----------------
	outbox, closeOutbox, err := openOutbox(ctx, cfg, log)
	if err != nil {
		return fail(err)
	}
	a.closers = append(a.closers, closeOutbox)

	// --------------- Servicio --------------
	seed := sharedUtils.Ternary(cfg.RandomSeed != 0, cfg.RandomSeed, time.Now().UnixNano())
	service := invoiceApp.NewInvoiceService(memory.NewInvoiceStore(), outbox, cache, generator.New(seed), log)
	if err := service.Seed(ctx); err != nil {
		return fail(err)
	}
	a.service = service

	// ---------------- Events ---------------
	var analytics invoiceDomain.AnalyticsRepository
	if cfg.ClickHouseAddr != "" {
		repo, err := clickhouse.NewInvoiceAnalyticsRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB, cfg.ClickHouseUser, cfg.ClickHousePass)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, analítica deshabilitada", zap.Error(err))
		} else if err := repo.InitSchema(ctx); err != nil {
			log.Warn("⚠️ No se pudo crear el esquema de ClickHouse", zap.Error(err))
			_ = repo.Close()
		} else {
			analytics = repo
			a.closers = append(a.closers, func() { _ = repo.Close() })
			log.Info("✅ ClickHouse conectado, analítica habilitada")
		}
	}
	consumer := invoiceEvents.NewInvoiceConsumer(service, analytics, log)

	var publisher sharedBus.EventBus
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))

		writer := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.Hash{},
		}
		kafkaPublisher := sharedEvents.NewKafkaPublisher(writer, log)
		a.closers = append(a.closers, func() { _ = kafkaPublisher.Close() })
		publisher = kafkaPublisher

		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaTopic,
			GroupID:  cfg.KafkaGroupID,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		sharedEvents.NewConsumerAdapter(reader, consumer, log).Start(ctx)
	} else {
		log.Info("⚡️ Usando bus de eventos en memoria (canales de Go)")

		bus := sharedEvents.NewInMemoryEventBus(cfg.KafkaTopic)
		a.closers = append(a.closers, bus.Close)
		publisher = bus

		var sub sharedBus.Subscriber = bus
		sharedEvents.ConsumeChan(ctx, sub.Subscribe(100), consumer, log)
	}

	// ------------ Outbox Worker ------------
	worker := relayer.NewOutboxWorker(outbox, publisher, invoiceDomain.NewEventRegistry(), cfg.OutboxPeriod, cfg.OutboxLimit, log)
	go worker.Start(ctx)

	// ---------------- Auth ----------------
	tokens := authApp.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	gatekeeper, err := authApp.NewGatekeeper(authDomain.Credentials{
		APIKey:      cfg.APIKey,
		Username:    cfg.AuthUsername,
		Password:    cfg.AuthPassword,
		BearerToken: cfg.BearerToken,
		SessionID:   cfg.SessionID,
	}, tokens, log)
	if err != nil {
		return fail(err)
	}
	authMiddleware := authHttp.NewMiddleware(gatekeeper, log)

	// ---------------- HTTP ----------------
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.RateLimit(cache, "global", cfg.RateLimit, cfg.RateLimitWindow, log),
	)

	invoiceHttp.RegisterInvoiceRoutes(router, invoiceHttp.NewInvoiceHandler(service, log), authMiddleware.Any())
	authHttp.RegisterAuthRoutes(router, authHttp.NewAuthHandler(gatekeeper), authMiddleware)
	authHttp.RegisterSandboxRoutes(router, authHttp.NewSandboxHandler(authMiddleware), authMiddleware, cache, log)
	router.NoRoute(middleware.NotFound(invoiceHttp.AvailableEndpoints))

	a.engine = router
	a.handler = gzhttp.GzipHandler(router)
	// Lo primero al cerrar: parar workers y consumidores.
	a.closers = append(a.closers, cancel)
	return a, nil
}

// newCache usa Redis si está configurado y responde; si no, la caché en memoria.
func newCache(ctx context.Context, cfg *config.Config, log *zap.Logger) cacheCounter {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		err := rdb.Ping(pingCtx).Err()
		if err == nil {
			log.Info("✅ Redis conectado, cache habilitado", zap.String("addr", cfg.RedisAddr))
			return sharedCache.NewRedisCache(rdb, cfg.CacheTTL)
		}
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		_ = rdb.Close()
	}
	return sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
}

// openOutbox abre el almacén del outbox según OUTBOX_DRIVER.
func openOutbox(ctx context.Context, cfg *config.Config, log *zap.Logger) (sharedDomain.OutboxRepository, func(), error) {
	switch cfg.OutboxDriver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("📦 Outbox en PostgreSQL")
		return postgres.NewOutboxRepoPostgres(db), func() { _ = db.Close() }, nil

	case "mongodb":
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo := mongodb.NewOutboxRepoMongoDB(client, cfg.MongoDB)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn("⚠️ No se pudo crear el índice del outbox", zap.Error(err))
		}
		log.Info("📦 Outbox en MongoDB")
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("📦 Outbox en SQLite", zap.String("dsn", cfg.SQLitePath))
		return sqlite.NewOutboxRepoSQLite(db), func() { _ = db.Close() }, nil
	}
}
