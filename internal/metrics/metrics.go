// Package metrics は注文まわりのprometheusメトリクス。
// レジストリは呼び出し側が渡す（テストごとに新しいものを使える）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ordersPlaced    prometheus.Counter
	ordersRejected  *prometheus.CounterVec
	ordersExecuted  prometheus.Counter
	ordersHighValue prometheus.Counter
	orderTotal      prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders committed by PlaceOrder.",
		}),
		ordersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Orders rejected by PlaceOrder, by error kind.",
		}, []string{"kind"}),
		ordersExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_executed_total",
			Help: "Orders archived and removed by ExecuteOrder.",
		}),
		ordersHighValue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_high_value_total",
			Help: "Orders whose total exceeded the advisory threshold.",
		}),
		orderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_total_value",
			Help:    "Total price of placed orders.",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.ordersPlaced, m.ordersRejected, m.ordersExecuted, m.ordersHighValue, m.orderTotal)
	}
	return m
}

// nilレシーバでも呼べる（メトリクスなしで動かすとき）

func (m *Metrics) OrderPlaced(total float64, highValue bool) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
	m.orderTotal.Observe(total)
	if highValue {
		m.ordersHighValue.Inc()
	}
}

func (m *Metrics) OrderRejected(kind string) {
	if m == nil {
		return
	}
	m.ordersRejected.WithLabelValues(kind).Inc()
}

func (m *Metrics) OrderExecuted() {
	if m == nil {
		return
	}
	m.ordersExecuted.Inc()
}
