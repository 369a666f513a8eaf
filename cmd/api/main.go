package main

import (
	"context"

	"github.com/ahmad-fahrudin/wablast-app/internal/api"
	"github.com/ahmad-fahrudin/wablast-app/internal/api/middleware"
	v1 "github.com/ahmad-fahrudin/wablast-app/internal/api/v1"
	"github.com/ahmad-fahrudin/wablast-app/internal/config"
	"github.com/ahmad-fahrudin/wablast-app/internal/database"
	"github.com/ahmad-fahrudin/wablast-app/internal/metrics"
	"github.com/ahmad-fahrudin/wablast-app/internal/repository"
	"github.com/ahmad-fahrudin/wablast-app/internal/service"
	"github.com/ahmad-fahrudin/wablast-app/pkg/httpclient"
	"github.com/ahmad-fahrudin/wablast-app/pkg/wagateway"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConnection,
			metrics.NewMetrics,
			NewFiberApp,
			NewGatewayClient,

			repository.NewDeviceRepository,
			repository.NewContactRepository,
			repository.NewGroupRepository,
			repository.NewMessageHistoryRepository,
			repository.NewSubscriptionRepository,
			repository.NewTransactionManager,

			service.NewRecipientResolver,
			service.NewQuotaGuard,
			service.NewHistoryRecorder,
			service.NewDispatchService,
			service.NewDeviceService,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, m *metrics.Metrics, cfg *config.Config,
	logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, m, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting API server", zap.String("port", cfg.API.Port))
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("API server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func NewGatewayClient(cfg *config.Config, logger *zap.Logger) wagateway.Client {
	client := httpclient.NewHTTPClient(cfg.Gateway.Timeout)
	return wagateway.NewClient(cfg.Gateway, client, logger)
}
