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

	"debatecamp/database"
	"debatecamp/internal/auth"
	"debatecamp/internal/config"
	"debatecamp/internal/email"
	"debatecamp/internal/handlers"
	"debatecamp/internal/logger"
	"debatecamp/internal/middleware"
	"debatecamp/internal/repositories"
	"debatecamp/internal/routes"
	"debatecamp/internal/services"
	"debatecamp/internal/storage"
	"debatecamp/internal/validator"
	"debatecamp/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Application - собранное приложение: роутер, сервисы и то, что надо закрыть при остановке
type Application struct {
	Router   *gin.Engine
	Services *services.ServiceContainer

	closers []func()
}

func Run() {
	if err := config.LoadConfig(); err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	application, err := New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	application.Close()
	logger.Info("Server stopped")
}

// New собирает приложение по конфигу
func New(cfg *config.Config) (*Application, error) {
	apperrors.Debug = !cfg.IsProduction()
	switch cfg.Server.Env {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	}

	application := &Application{}

	// 1. Хранилище отзывов
	reviewRepo, closeRepo, err := initializeReviewRepository(cfg)
	if err != nil {
		return nil, err
	}
	application.closers = append(application.closers, closeRepo)

	// 2. Токены администратора (nil, если jwt_secret не задан)
	tokens, err := initializeTokens(cfg)
	if err != nil {
		application.Close()
		return nil, err
	}

	// 3. Сервисы
	serviceContainer, closeServices := initializeServices(cfg, reviewRepo, tokens)
	application.closers = append(application.closers, closeServices)
	application.Services = serviceContainer

	// 4. Авторизация администратора
	authorizer, err := initializeAuthorizer(cfg, tokens)
	if err != nil {
		application.Close()
		return nil, err
	}

	// 5. Хэндлеры и роутер
	appHandlers := initializeHandlers(serviceContainer, authorizer)
	application.Router = SetupRouter(cfg, appHandlers)

	return application, nil
}

// Close дожидается фоновых уведомлений и закрывает соединения
func (a *Application) Close() {
	// в обратном порядке: сначала сервисы, потом хранилище
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func SetupRouter(cfg *config.Config, appHandlers *handlers.AppHandlers) *gin.Engine {
	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeReviewRepository(cfg *config.Config) (repositories.ReviewRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverDatabase:
		logger.Info("Connecting to database...", "dialect", cfg.Database.Dialect)
		gormDB, err := database.Open(cfg.Database.Dialect, cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.AutoMigrate(gormDB); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database connected")

		closeDB := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repositories.NewGormReviewRepository(gormDB), closeDB, nil

	default:
		storageInstance, err := storage.NewStorage(storage.Config{
			Type:      cfg.Storage.Type,
			BasePath:  cfg.Storage.BasePath,
			BaseURL:   cfg.Storage.BaseURL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		logger.Info("Storage initialized",
			"type", cfg.Storage.Type,
			"document", storageInstance.Location(cfg.Reviews.Document),
		)
		return repositories.NewDocumentReviewRepository(storageInstance, cfg.Reviews.Document), func() {}, nil
	}
}

func initializeTokens(cfg *config.Config) (*auth.TokenManager, error) {
	if cfg.Admin.JWTSecret == "" {
		return nil, nil
	}
	tokens, err := auth.NewTokenManager(cfg.Admin.JWTSecret, time.Duration(cfg.Admin.TokenTTLMinutes)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}
	return tokens, nil
}

func initializeServices(cfg *config.Config, reviewRepo repositories.ReviewRepository, tokens *auth.TokenManager) (*services.ServiceContainer, func()) {
	customValidator := validator.New()

	notifier, waitNotifier := initializeNotifier(cfg)

	return &services.ServiceContainer{
		ReviewService: services.NewReviewService(reviewRepo, customValidator, notifier),
		AuthService:   services.NewAuthService(cfg.Admin.PasswordHash, tokens),
		Notifier:      notifier,
	}, waitNotifier
}

// initializeNotifier выбирает, куда уходят уведомления о новых отзывах.
// Без SMTP в production уведомления выключены, вне production письма пишутся в лог.
func initializeNotifier(cfg *config.Config) (services.ModerationNotifier, func()) {
	if cfg.Email.ModeratorEmail == "" {
		logger.Info("Moderator email is not set, review notifications disabled")
		return services.NoopModerationNotifier{}, func() {}
	}

	smtpConfig := &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
	}

	var provider email.Provider
	switch {
	case smtpConfig.Enabled():
		provider = email.NewGomailProvider(smtpConfig)
	case !cfg.IsProduction():
		logger.Warn("SMTP is not configured, moderator emails are written to the log")
		provider = &LogEmailProvider{}
	default:
		logger.Warn("SMTP is not configured, review notifications disabled")
		return services.NoopModerationNotifier{}, func() {}
	}

	if err := provider.Validate(); err != nil {
		logger.Warn("Email provider misconfigured, review notifications disabled", "error", err)
		return services.NoopModerationNotifier{}, func() {}
	}

	notifier := services.NewEmailModerationNotifier(provider, email.NewTemplateManager(), cfg.Email.ModeratorEmail)
	return notifier, notifier.Wait
}

// initializeAuthorizer: admin-key и/или Bearer-токен. Вне production проверка
// выключена, пока не задан admin.enforce.
func initializeAuthorizer(cfg *config.Config, tokens *auth.TokenManager) (auth.Authorizer, error) {
	if !cfg.AdminCheckEnforced() {
		logger.Warn("Admin check is disabled outside production", "env", cfg.Server.Env)
		return auth.BypassAuthorizer{}, nil
	}

	var chain auth.ChainAuthorizer
	if cfg.Admin.Key != "" {
		chain = append(chain, auth.NewSharedSecretAuthorizer(cfg.Admin.Key))
	}
	if tokens != nil {
		chain = append(chain, auth.NewTokenAuthorizer(tokens))
	}
	if len(chain) == 0 {
		return nil, errors.New("admin check is enforced but neither admin key nor jwt secret is set")
	}
	return chain, nil
}

func initializeHandlers(services *services.ServiceContainer, authorizer auth.Authorizer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, services.AuthService),
		ReviewHandler: handlers.NewReviewHandler(baseHandler, services.ReviewService, middleware.AdminAuth(authorizer)),
		HealthHandler: handlers.NewHealthHandler(),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.ErrRouteNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.ErrMethodNotAllowed)
	})
	return router
}
