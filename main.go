package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/eventpass/attendance-service/config"
	"github.com/eventpass/attendance-service/internal/consumer"
	"github.com/eventpass/attendance-service/internal/handler"
	"github.com/eventpass/attendance-service/internal/mailer"
	"github.com/eventpass/attendance-service/internal/middleware"
	"github.com/eventpass/attendance-service/internal/models"
	"github.com/eventpass/attendance-service/internal/repository"
	"github.com/eventpass/attendance-service/internal/service"
	"github.com/eventpass/attendance-service/pkg/database"
	"github.com/eventpass/attendance-service/pkg/rabbitmq"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: publish lifecycle events, consume identity updates
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		logger.Error("rabbitmq connect failed", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		logger.Error("rabbitmq consumer connect failed", "error", err)
		os.Exit(1)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		logger.Error("rabbitmq consume failed", "error", err)
		os.Exit(1)
	}
	consumer.NewUserConsumer(db, logger).Start(msgs)

	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	assistanceRepo := repository.NewAssistanceRepository(db)

	// Services
	admissionSvc := service.NewAdmissionService(assistanceRepo, eventRepo, logger)
	attendanceSvc := service.NewAttendanceService(assistanceRepo, logger)
	eventSvc := service.NewEventService(eventRepo, assistanceRepo, smtp, publisher, logger)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "attendance-service"})
	})
	if cfg.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	authed := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole(models.RolePresenter, models.RoleAdmin)

	api := e.Group("/api/v1")
	events := api.Group("/events")
	handler.NewEventHandler(eventSvc).RegisterRoutes(events, authed, staff)
	handler.NewAssistanceHandler(admissionSvc, attendanceSvc).RegisterRoutes(api, authed, staff)

	logger.Info("attendance service starting", "port", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
