package orders

import "github.com/prometheus/client_golang/prometheus"

var (
	ordersAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orderbridge_orders_accepted_total",
		Help: "Orders turned into an upstream invoice.",
	})
	ordersRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderbridge_orders_rejected_total",
		Help: "Orders that did not produce an invoice, by reason.",
	}, []string{"reason"})
	paymentsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orderbridge_payments_failed_total",
		Help: "Best-effort payment recordings that failed after a created invoice.",
	})
)

func init() {
	prometheus.MustRegister(ordersAccepted, ordersRejected, paymentsFailed)
}
