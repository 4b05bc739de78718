package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront-admin/internal/metrics"
)

// Metrics records request count, latency and error count per route
// template, so /notifications/:id is one series rather than one per id.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		endpoint := c.Route().Path
		method := c.Method()
		code := strconv.Itoa(status)

		metrics.HttpRequestsTotal.WithLabelValues(endpoint, code, method).Inc()
		metrics.HttpRequestDuration.WithLabelValues(endpoint, method).Observe(time.Since(start).Seconds())
		if status >= 400 {
			metrics.HttpErrorsTotal.WithLabelValues(endpoint, code, method).Inc()
		}

		return err
	}
}
