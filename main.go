package main

import (
	"log"

	"github.com/bookfast/bookfast/config"
	"github.com/bookfast/bookfast/internal/auth"
	"github.com/bookfast/bookfast/internal/handler"
	"github.com/bookfast/bookfast/internal/middleware"
	"github.com/bookfast/bookfast/internal/repository"
	"github.com/bookfast/bookfast/internal/service"
	"github.com/bookfast/bookfast/internal/validation"
	"github.com/bookfast/bookfast/pkg/database"
	"github.com/bookfast/bookfast/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: ticket/event lifecycle messages, optional
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, running without a publisher")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := service.NewUserService(userRepo, tokens)
	eventSvc := service.NewEventService(eventRepo, publisher)
	bookingSvc := service.NewBookingService(ticketRepo, eventRepo, publisher, cfg.TxTimeout)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = validation.New()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "bookfast"})
	})

	authMw := middleware.JWT(tokens)
	handler.NewUserHandler(userSvc).RegisterRoutes(e)
	handler.NewEventHandler(eventSvc).RegisterRoutes(e.Group("/api/v1/events"), authMw)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, authMw)

	log.Printf("BookFast starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
