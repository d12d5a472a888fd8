package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventadmin_client",
			Name:      "requests_total",
			Help:      "HTTP sends by method and status class (transport for no response).",
		},
		[]string{"method", "status"},
	)

	tokenRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventadmin_client",
			Name:      "token_refresh_total",
			Help:      "Refresh-token exchanges by outcome.",
		},
		[]string{"outcome"},
	)

	retriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eventadmin_client",
			Name:      "request_retries_total",
			Help:      "Requests re-issued after a successful token refresh.",
		},
	)
)

const (
	refreshOK        = "ok"
	refreshRejected  = "rejected"
	refreshMalformed = "malformed"
	refreshFailed    = "failed"
	refreshNoToken   = "no_refresh_token"
)

func statusClass(code int) string {
	switch {
	case code == 0:
		return "transport"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
