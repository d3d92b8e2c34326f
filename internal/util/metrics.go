package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutSessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_sessions_created_total",
		Help: "Total number of hosted checkout sessions created",
	})

	CheckoutSessionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_sessions_failed_total",
		Help: "Total number of failed checkout session creations",
	}, []string{"reason"})

	ReconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciliations_total",
		Help: "Total number of payment reconciliation attempts by outcome",
	}, []string{"outcome"})

	ReconciliationReplaysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconciliation_replays_total",
		Help: "Total number of reconciliation calls resolved to an existing order",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created by reconciliation",
	})

	OrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Total number of orders deleted administratively",
	})

	InventoryDecrementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_decrements_total",
		Help: "Total number of product quantity decrements",
	})

	InventoryOversoldTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_oversold_total",
		Help: "Reconciliations that completed against a product already at zero stock",
	})

	ReconciliationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reconciliation_latency_seconds",
		Help:    "Latency of payment reconciliation",
		Buckets: prometheus.DefBuckets,
	})

	GatewayRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_gateway_request_latency_seconds",
		Help:    "Latency of payment gateway calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
