package api

import (
	v1 "github.com/ahmad-fahrudin/wablast-app/internal/api/v1"
	"github.com/ahmad-fahrudin/wablast-app/internal/metrics"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, m *metrics.Metrics, logger *zap.Logger) {
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/v1/messages/text", handler.SendText)
	app.Post("/v1/messages/media", handler.SendMedia)

	app.Post("/v1/devices", handler.RegisterDevice)
	app.Get("/v1/devices", handler.ListDevices)
	app.Get("/v1/devices/:deviceId/qr", handler.DeviceQR)
	app.Post("/v1/devices/:deviceId/status", handler.DeviceStatus)
	app.Post("/v1/devices/:deviceId/subscription", handler.ActivateSubscription)
	app.Delete("/v1/devices/:deviceId", handler.DeleteDevice)
}
