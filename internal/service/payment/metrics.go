package payment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	providerClick = "click"
	providerPayme = "payme"
)

var paymentCallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payment_callbacks_total",
		Help: "Total number of payment provider callbacks by response code",
	},
	[]string{"provider", "code"},
)
