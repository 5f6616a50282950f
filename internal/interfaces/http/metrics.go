package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas de negocio y de servidor expuestas en /metrics.
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Peticiones HTTP por método, ruta y código de respuesta.",
	}, []string{"method", "route", "status"})

	transfersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "transfers",
		Name:      "created_total",
		Help:      "Traslados creados.",
	})

	transfersVerifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "transfers",
		Name:      "verified_total",
		Help:      "Verificaciones de traslado por resultado (verified | discrepancy).",
	}, []string{"outcome"})

	insufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "transfers",
		Name:      "insufficient_stock_total",
		Help:      "Operaciones rechazadas por stock insuficiente.",
	})
)

// MetricsMiddleware cuenta cada petición con método, ruta registrada y status.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		route := c.Route().Path
		httpRequestsTotal.WithLabelValues(
			c.Method(), route, strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		return err
	}
}

// MetricsHandler expone el registro Prometheus vía el adaptor net/http de Fiber.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
