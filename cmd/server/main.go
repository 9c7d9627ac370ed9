package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/crmsuite/backend/internal/application/catalog"
	crmapp "github.com/crmsuite/backend/internal/application/crm"
	directoryapp "github.com/crmsuite/backend/internal/application/directory"
	identityapp "github.com/crmsuite/backend/internal/application/identity"
	notificationapp "github.com/crmsuite/backend/internal/application/notification"
	printingapp "github.com/crmsuite/backend/internal/application/printing"
	reportapp "github.com/crmsuite/backend/internal/application/report"
	salesapp "github.com/crmsuite/backend/internal/application/sales"
	scrapeapp "github.com/crmsuite/backend/internal/application/scrape"
	vaultapp "github.com/crmsuite/backend/internal/application/vault"
	"github.com/crmsuite/backend/internal/domain/scrape"
	"github.com/crmsuite/backend/internal/infrastructure/auth"
	"github.com/crmsuite/backend/internal/infrastructure/cache"
	"github.com/crmsuite/backend/internal/infrastructure/config"
	"github.com/crmsuite/backend/internal/infrastructure/event"
	"github.com/crmsuite/backend/internal/infrastructure/logger"
	"github.com/crmsuite/backend/internal/infrastructure/persistence"
	"github.com/crmsuite/backend/internal/infrastructure/printing"
	"github.com/crmsuite/backend/internal/infrastructure/scraper"
	"github.com/crmsuite/backend/internal/infrastructure/storage"
	"github.com/crmsuite/backend/internal/infrastructure/telemetry"
	"github.com/crmsuite/backend/internal/interfaces/http/handler"
	"github.com/crmsuite/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry and profiling are optional; disabled configs yield no-ops.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, &cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, &cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter", zap.Error(err))
		}
	}()

	httpMetrics, err := telemetry.NewHTTPMetrics(meterProvider.Meter("http"))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	if cfg.Profiling.Enabled {
		profiler, err := telemetry.NewProfiler(&cfg.Profiling, log)
		if err != nil {
			log.Fatal("Failed to start profiler", zap.Error(err))
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
		tracerProvider.EnableSpanProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis is optional; without it the in-process fallbacks are used and
	// token revocation is disabled.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	dealRepo := persistence.NewGormDealRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryNoteRepository(db.DB)
	sequenceRepo := persistence.NewGormNumberSequenceRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	vaultRepo := persistence.NewGormVaultRepository(db.DB)
	scrapeJobRepo := persistence.NewGormScrapeJobRepository(db.DB)

	eventBus := event.NewInMemoryBus(log)

	// Auth
	jwtService := auth.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenExpiration,
		cfg.JWT.RefreshTokenExpiration,
		cfg.JWT.MaxRefreshCount,
	)
	var blacklist auth.TokenBlacklist
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	var unreadCounter notificationapp.UnreadCounter
	if redisClient != nil {
		unreadCounter = cache.NewRedisUnreadCounter(redisClient, 10*time.Minute)
	} else {
		unreadCounter = cache.NewMemoryUnreadCounter(10 * time.Minute)
	}

	// Document vault storage
	var presigner vaultapp.Presigner
	if cfg.Storage.Bucket != "" {
		s3Presigner, err := storage.NewS3Presigner(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		presigner = s3Presigner
		log.Info("Object storage configured", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		presigner = storage.NewStubPresigner()
		log.Warn("No storage bucket configured, using stub presigner")
	}

	// PDF rendering
	var converter printing.PDFConverter
	if cfg.Printing.Enabled {
		converter = printing.NewChromeConverter(&cfg.Printing, log)
	} else {
		converter = printing.NewStubConverter()
	}
	renderer := printing.NewHTMLRenderer(converter)

	// Scrape queue and client
	var queue scrape.Queue
	if redisClient != nil {
		queue = scraper.NewRedisQueue(redisClient, cfg.Scrape.QueueKey, cfg.Scrape.PollInterval)
	} else {
		queue = scraper.NewMemoryQueue(0, cfg.Scrape.PollInterval)
	}
	scrapeClient := scraper.NewHTTPClient(&cfg.Scrape, log)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, eventBus)
	companyService := directoryapp.NewCompanyService(companyRepo, eventBus)
	contactService := directoryapp.NewContactService(contactRepo)
	leadService := crmapp.NewLeadService(leadRepo, dealRepo, eventBus)
	dealService := crmapp.NewDealService(dealRepo, eventBus)
	productService := catalogapp.NewProductService(productRepo, eventBus)
	quoteService := salesapp.NewQuoteService(quoteRepo, orderRepo, productRepo, sequenceRepo, eventBus)
	orderService := salesapp.NewOrderService(orderRepo, deliveryRepo, productRepo, sequenceRepo, eventBus)
	invoiceService := salesapp.NewInvoiceService(invoiceRepo, productRepo, sequenceRepo, eventBus)
	deliveryService := salesapp.NewDeliveryNoteService(deliveryRepo, eventBus)
	notificationService := notificationapp.NewService(notificationRepo, unreadCounter, log)
	vaultService := vaultapp.NewService(vaultRepo, presigner, eventBus)
	scrapeService := scrapeapp.NewService(scrapeJobRepo, queue, scrapeClient, notificationService, eventBus, log)
	reportService := reportapp.NewService(invoiceRepo, dealRepo, leadRepo)
	printingService := printingapp.NewService(quoteRepo, invoiceRepo, deliveryRepo, renderer)

	// Background scrape workers
	workerPool := scraper.NewWorkerPool(queue, scrapeService, cfg.Scrape.WorkerCount, log)
	workerPool.Start(ctx)
	defer workerPool.Stop()
	log.Info("Scrape workers started", zap.Int("workers", cfg.Scrape.WorkerCount))

	engine := router.New(router.Dependencies{
		Config:      cfg,
		Logger:      log,
		JWTService:  jwtService,
		Blacklist:   blacklist,
		HTTPMetrics: httpMetrics,

		Health:        handler.NewHealthHandler(db, redisClient, version),
		Auth:          handler.NewAuthHandler(authService),
		Users:         handler.NewUserHandler(userService),
		Companies:     handler.NewCompanyHandler(companyService),
		Contacts:      handler.NewContactHandler(contactService),
		Leads:         handler.NewLeadHandler(leadService),
		Deals:         handler.NewDealHandler(dealService),
		Products:      handler.NewProductHandler(productService),
		Quotes:        handler.NewQuoteHandler(quoteService),
		Orders:        handler.NewOrderHandler(orderService, deliveryService),
		Invoices:      handler.NewInvoiceHandler(invoiceService),
		DeliveryNotes: handler.NewDeliveryNoteHandler(deliveryService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Vault:         handler.NewVaultHandler(vaultService),
		Scrape:        handler.NewScrapeHandler(scrapeService),
		Reports:       handler.NewReportHandler(reportService),
		Print:         handler.NewPrintHandler(printingService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
