package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registry *prometheus.Registry

	// Command invocations by outcome. Watch for: error share of a single command.
	commandsTotal *prometheus.CounterVec

	// Handler latency, including the reply round trip.
	commandDuration *prometheus.HistogramVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jakobot_commands_total",
			Help: "Total number of dispatched commands",
		},
		[]string{"command", "status"},
	)
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jakobot_command_duration_seconds",
			Help:    "Command handler latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	registry.MustRegister(commandsTotal, commandDuration)
}

// MetricsRegistry is the registry served by the ops endpoint.
func MetricsRegistry() *prometheus.Registry {
	return registry
}

// MustRegisterMetrics adds feature collectors to the shared registry.
func MustRegisterMetrics(cs ...prometheus.Collector) {
	registry.MustRegister(cs...)
}
