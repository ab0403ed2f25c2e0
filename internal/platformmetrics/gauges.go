package platformmetrics

import (
	"runtime"

	admindomain "github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Gauges is a dedicated registry so pushes carry platform totals only,
// never the per-request series served on /metrics.
type Gauges struct {
	registry            *prometheus.Registry
	chefs               prometheus.Gauge
	activeChefs         prometheus.Gauge
	suspendedChefs      prometheus.Gauge
	clients             prometheus.Gauge
	activeMenus         prometheus.Gauge
	activeSubscriptions prometheus.Gauge
	ordersToday         prometheus.Gauge
	memoryBytes         prometheus.Gauge
}

func NewGauges() *Gauges {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	}
	g := &Gauges{
		registry:            prometheus.NewRegistry(),
		chefs:               gauge("chefetoile_platform_chefs", "Registered chefs."),
		activeChefs:         gauge("chefetoile_platform_chefs_active", "Chefs that are neither suspended nor inactive."),
		suspendedChefs:      gauge("chefetoile_platform_chefs_suspended", "Suspended chefs."),
		clients:             gauge("chefetoile_platform_clients", "Client accounts."),
		activeMenus:         gauge("chefetoile_platform_menus_active", "Active weekly menus."),
		activeSubscriptions: gauge("chefetoile_platform_subscriptions_active", "Active subscriptions."),
		ordersToday:         gauge("chefetoile_platform_orders_today", "Orders scheduled for the current local day."),
		memoryBytes:         gauge("chefetoile_process_memory_bytes", "Memory obtained from the OS."),
	}
	g.registry.MustRegister(
		g.chefs, g.activeChefs, g.suspendedChefs, g.clients,
		g.activeMenus, g.activeSubscriptions, g.ordersToday, g.memoryBytes,
	)
	return g
}

func (g *Gauges) Registry() *prometheus.Registry {
	return g.registry
}

func (g *Gauges) Set(stats admindomain.Stats) {
	g.chefs.Set(float64(stats.Chefs))
	g.activeChefs.Set(float64(stats.ActiveChefs))
	g.suspendedChefs.Set(float64(stats.SuspendedChefs))
	g.clients.Set(float64(stats.Clients))
	g.activeMenus.Set(float64(stats.ActiveMenus))
	g.activeSubscriptions.Set(float64(stats.ActiveSubscriptions))
	g.ordersToday.Set(float64(stats.OrdersToday))

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	g.memoryBytes.Set(float64(mem.Sys))
}
