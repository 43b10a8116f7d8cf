package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/punchcard-app/punchcard/internal/config"
	"github.com/punchcard-app/punchcard/internal/handler"
	"github.com/punchcard-app/punchcard/internal/repository"
	"github.com/punchcard-app/punchcard/internal/service"
	"github.com/punchcard-app/punchcard/internal/sms"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected")

	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	transactor := repository.NewTransactor(db)

	gateway := sms.NewTwilioGateway(sms.TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
	})
	notifier := sms.NewNotifier(gateway, userRepo, cfg.SMSWorkerCount, cfg.SMSQueueSize)
	defer notifier.Close()

	rewardSvc := service.NewRewardService(mealRepo, rewardRepo, notificationRepo, transactor, notifier, service.RewardConfig{
		Threshold: cfg.RewardThreshold,
		Window:    cfg.RewardWindow,
	}, nil)
	mealSvc := service.NewMealService(mealRepo, rewardSvc)
	notificationSvc := service.NewNotificationService(notificationRepo)
	userSvc := service.NewUserService(userRepo)

	mealHandler := handler.NewMealHandler(mealSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	userHandler := handler.NewUserHandler(userSvc)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Validator = handler.NewAppValidator()

	e.Use(middleware.RequestID())
	e.Use(handler.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return handler.JSON(c, http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")

	api.POST("/users", userHandler.Create)
	api.GET("/users/:id", userHandler.Get)
	api.GET("/users/:id/meals", mealHandler.ListByUser)
	api.GET("/users/:id/rewards", rewardHandler.ListByUser)
	api.GET("/users/:id/notifications", notificationHandler.ListByUser)

	api.POST("/meals", mealHandler.Submit)
	api.POST("/meals/:id/confirm", mealHandler.Confirm)
	api.POST("/meals/:id/reject", mealHandler.Reject)

	api.POST("/rewards/:id/redeem", rewardHandler.Redeem)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
