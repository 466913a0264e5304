package middleware

import (
	"reflect"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-console/pkg/util"
)

type MetricsConfig struct {
	Skipper             Skipper
	Name                string
	NormalizeHTTPStatus bool
}

const notFoundPath = "/not-found"

var DefaultMetricsConfig = MetricsConfig{
	Skipper: func(c echo.Context) bool {
		path := c.Path()
		return path == "/metrics" || path == "/health"
	},
	Name:                "request_duration_seconds",
	NormalizeHTTPStatus: false,
}

func normalizeHTTPStatus(status int) string {
	if status < 200 {
		return "1xx"
	} else if status < 300 {
		return "2xx"
	} else if status < 400 {
		return "3xx"
	} else if status < 500 {
		return "4xx"
	}
	return "5xx"
}

func isNotFoundHandler(handler echo.HandlerFunc) bool {
	return reflect.ValueOf(handler).Pointer() == reflect.ValueOf(echo.NotFoundHandler).Pointer()
}

func Metrics() echo.MiddlewareFunc {
	return MetricsWithConfig(DefaultMetricsConfig)
}

// MetricsWithConfig observes request latency by status, method and route.
// The metrics endpoint itself is mounted by the server.
func MetricsWithConfig(config MetricsConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultSkipper
	}
	httpMetrics, err := util.GetHistogramVec(config.Name, "code", "method", "path")
	if err != nil {
		panic(err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			path := c.Path()
			// unmatched paths share one label
			if isNotFoundHandler(c.Handler()) {
				path = notFoundPath
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			if config.NormalizeHTTPStatus {
				status = normalizeHTTPStatus(c.Response().Status)
			}
			httpMetrics.WithLabelValues(status, c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
