// Package metrics exposes Prometheus counters for the shop backend.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SalesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptop_ledger_sales_recorded_total",
		Help: "Sales committed by the sale workflow.",
	})

	SalesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laptop_ledger_sales_rejected_total",
		Help: "Sale attempts that did not commit, by reason.",
	}, []string{"reason"})

	SaleRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptop_ledger_sale_revenue_total",
		Help: "Sum of sale prices committed.",
	})

	CommissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptop_ledger_commissions_created_total",
		Help: "Commission records created, automatically or by hand.",
	})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laptop_ledger_login_attempts_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laptop_ledger_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "laptop_ledger_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
