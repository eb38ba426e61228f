package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// CheckoutMetrics counts placed orders and tracks their totals.
type CheckoutMetrics struct {
	orders *prometheus.CounterVec
	totals *prometheus.HistogramVec
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_orders_total",
		Help:      "Orders created by checkout.",
	}, []string{"payment_method"})
	totals := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_order_total",
		Help:      "Order totals in store currency.",
		Buckets:   []float64{0, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"payment_method"})
	reg.MustRegister(orders, totals)
	return &CheckoutMetrics{orders: orders, totals: totals}
}

// ObserveOrder records one placed order.
func (c *CheckoutMetrics) ObserveOrder(paymentMethod string, total decimal.Decimal) {
	if c == nil || c.orders == nil {
		return
	}
	label := normalizeLabel(paymentMethod)
	c.orders.WithLabelValues(label).Inc()
	c.totals.WithLabelValues(label).Observe(total.InexactFloat64())
}
