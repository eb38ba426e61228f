package metrics

import "github.com/prometheus/client_golang/prometheus"

// InventoryMetrics exposes the size of the last low-stock report.
type InventoryMetrics struct {
	lowStock prometheus.Gauge
}

func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	lowStock := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_low_stock_items",
		Help:      "Books at or below their reorder threshold.",
	})
	reg.MustRegister(lowStock)
	return &InventoryMetrics{lowStock: lowStock}
}

func (m *InventoryMetrics) SetLowStock(count int) {
	if m == nil || m.lowStock == nil {
		return
	}
	m.lowStock.Set(float64(count))
}
