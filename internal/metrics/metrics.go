package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	mappingCoverage = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "extraction_mapping_coverage_ratio",
		Help:    "Share of schema fields filled per extraction mapping.",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	extractionFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "extraction_fetches_total",
		Help: "Extraction payload fetches by outcome.",
	}, []string{"outcome"})
)

func PrometheusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func ObserveMappingCoverage(ratio float64) {
	mappingCoverage.Observe(ratio)
}

func CountExtractionFetch(outcome string) {
	extractionFetchesTotal.WithLabelValues(outcome).Inc()
}
