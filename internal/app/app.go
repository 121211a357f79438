package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/pharmacy-order-tracker/config"
	"github.com/alimikegami/pharmacy-order-tracker/internal/controller"
	localmiddleware "github.com/alimikegami/pharmacy-order-tracker/internal/middleware"
	"github.com/alimikegami/pharmacy-order-tracker/internal/infrastructure/tracing"
	"github.com/alimikegami/pharmacy-order-tracker/internal/repository"
	"github.com/alimikegami/pharmacy-order-tracker/internal/service"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
)

type App struct {
	DB            *sqlx.DB
	Config        *config.Config
	KafkaProducer *kafkago.Conn
	Server        *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	}

	if traceProvider != nil {
		defer func() {
			if err := traceProvider.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown tracing")
			}
		}()

		tracer := traceProvider.Tracer("pharmacy-order-tracker")

		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	e.Use(echoprometheus.NewMiddleware("pharmacy_order_tracker"))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	userRepo := repository.CreateNewUserRepository(app.DB)
	orderRepo := repository.CreateOrderRepository(app.DB)
	userSvc := service.CreateNewUserService(userRepo, *app.Config)
	orderSvc := service.CreateOrderService(orderRepo, *app.Config, app.KafkaProducer)

	isLoggedIn := localmiddleware.IsLoggedIn(app.Config.JWTSecret)

	controller.CreateUserController(api, userSvc)
	controller.CreateOrderController(api, orderSvc, isLoggedIn)

	app.Server = e

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
