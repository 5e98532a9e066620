package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin_console/internal/apiclient"
	"admin_console/internal/config"
	"admin_console/internal/handlers"
	"admin_console/internal/logger"
	"admin_console/internal/middleware"
	"admin_console/internal/pagestate"
	"admin_console/internal/routes"
	"admin_console/internal/services"
	"admin_console/internal/session"
	"admin_console/internal/staging"
	"admin_console/internal/storage"
	"admin_console/internal/validator"
	"admin_console/internal/view"
	"admin_console/internal/workers"
	"admin_console/web"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
)

// Options - то, что можно подменить при сборке (тесты, другой Stripe backend)
type Options struct {
	Version       string
	Storage       storage.Storage // nil = из конфигурации
	StripeBackend stripe.Backend  // nil = API Stripe
}

// App - собранное приложение
type App struct {
	Config   *config.Config
	Router   *gin.Engine
	Registry *staging.Registry
	Services *services.ServiceContainer
}

func Run(cfg *config.Config, version string) error {
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := New(cfg, Options{Version: version})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Воркер чистит видео, которые выбрали, но так и не загрузили
	stagingWorker := workers.NewStagingWorker(application.Registry, cfg.Upload.StagingTTL)
	go stagingWorker.Start(ctx)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info(fmt.Sprintf("🚀 Server starting on %s", cfg.Address()), "api", cfg.API.BaseURL, "version", version)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server startup error: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// New собирает клиент API, сервисы, хэндлеры и роутер
func New(cfg *config.Config, opts Options) (*App, error) {
	storageInstance := opts.Storage
	if storageInstance == nil {
		var err error
		storageInstance, err = storage.NewStorage(storage.Config{
			Type:      cfg.Storage.Type,
			BasePath:  cfg.Storage.BasePath,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	apiClient, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize api client: %w", err)
	}

	// 1. Инициализируем сервисы
	serviceContainer := services.NewServiceContainer(services.Dependencies{
		API: apiClient,
		PlanIDs: services.PlanIDs{
			Plus: cfg.Plans.PlusID,
			Free: cfg.Plans.FreeID,
		},
		Payments: services.PaymentConfig{
			PublishableKey: cfg.Payments.PublishableKey,
			SecretKey:      cfg.Payments.SecretKey,
			WebhookURL:     cfg.Payments.WebhookURL,
		},
		StripeBackend: opts.StripeBackend,
	})

	registry := staging.NewRegistry(storageInstance, cfg.Upload.MaxVideoSize)
	sessions := session.NewManager(session.Config{
		Secret:     cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Server.TLS,
	})

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer, sessions, registry, opts.Version)

	// 3. Инициализируем Gin
	ginRouter, err := initializeGinRouter(cfg, sessions)
	if err != nil {
		return nil, err
	}

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers, routes.Options{
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})

	return &App{
		Config:   cfg,
		Router:   ginRouter,
		Registry: registry,
		Services: serviceContainer,
	}, nil
}

func initializeHandlers(services *services.ServiceContainer, sessions *session.Manager, registry *staging.Registry, version string) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, sessions, pagestate.NewMutations())

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		ShellHandler:        handlers.NewShellHandler(baseHandler, version),
		CustomerHandler:     handlers.NewCustomerHandler(baseHandler, services.CustomerService),
		ReportHandler:       handlers.NewReportHandler(baseHandler, services.ReportService),
		CMSHandler:          handlers.NewCMSHandler(baseHandler, services.ContentService, registry),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, services.PlanService),
		TaxHandler:          handlers.NewTaxHandler(baseHandler, services.TaxService),
		SettingHandler:      handlers.NewSettingHandler(baseHandler, services.SettingsService),
	}
}

func initializeGinRouter(cfg *config.Config, sessions *session.Manager) (*gin.Engine, error) {
	templates := view.NewTemplateManager()
	if err := templates.LoadTemplates(web.Templates()); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	router := gin.New()
	router.HTMLRender = templates
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	if cfg.Metrics.Enabled {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.SessionMiddleware(sessions))
	if cfg.Security.CSRFEnabled {
		router.Use(middleware.CSRFMiddleware([]byte(cfg.Security.CSRFKey), cfg.Server.TLS))
	} else {
		logger.Warn("CSRF protection is disabled")
	}
	return router, nil
}
