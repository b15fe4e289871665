package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Facturador-api/internal/application/analytics"
	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/usecase"
	"github.com/jhoicas/Facturador-api/internal/domain/invoice"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/idempotency"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Facturador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Facturador-api/internal/interfaces/http"
	"github.com/jhoicas/Facturador-api/pkg/config"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage repositorios y runner transaccional del backend elegido.
type storage struct {
	companies repository.CompanyRepository
	clients   repository.ClientRepository
	products  repository.ProductRepository
	invoices  repository.InvoiceRepository
	settings  repository.InvoiceSettingsRepository
	tx        billing.BillingTxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Backend == config.BackendMemory {
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			companies: s.Companies(), clients: s.Clients(), products: s.Products(),
			invoices: s.Invoices(), settings: s.Settings(), tx: s,
			close: func() {},
		}, nil
	}

	if cfg.Storage.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		companies: postgres.NewCompanyRepository(pool),
		clients:   postgres.NewClientRepository(pool),
		products:  postgres.NewProductRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		settings:  postgres.NewInvoiceSettingsRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func openIdempotency(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (idempotency.Store, func()) {
	ttl := time.Duration(cfg.IdempotencyTTL) * time.Minute
	if cfg.URL == "" {
		log.Info().Msg("idempotencia en memoria del proceso")
		return idempotency.NewMemoryStore(ttl), func() {}
	}
	store, err := idempotency.NewRedisStore(ctx, cfg.URL, ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	return store, func() { _ = store.Close() }
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	idem, closeIdem := openIdempotency(ctx, cfg.Redis, log)
	defer closeIdem()

	recorder := metrics.NewRecorder()
	calc := invoice.NewCalculator(cfg.Billing.TaxRate, cfg.Billing.MoneyScale)

	invoiceUC := billing.NewInvoiceUseCase(
		store.tx, store.invoices, store.clients, store.companies, store.products,
		billing.InvoiceConfig{Calculator: calc, DefaultPattern: cfg.Billing.DefaultPattern},
		recorder, log,
	)
	pdfUC := billing.NewPDFUseCase(store.invoices, store.clients, store.companies, calc, infrapdf.NewMarotoPDFGenerator())
	settingsUC := billing.NewSettingsUseCase(store.settings, cfg.Billing.DefaultPattern)
	dashboardUC := appanalytics.NewDashboardUseCase(store.companies, store.clients, store.products, store.invoices)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http"), recorder))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Facturador API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(store.companies),
		ClientUC:    usecase.NewClientUseCase(store.clients, store.companies),
		ProductUC:   usecase.NewProductUseCase(store.products, store.companies),
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		SettingsUC:  settingsUC,
		DashboardUC: dashboardUC,
		Idempotency: idem,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
