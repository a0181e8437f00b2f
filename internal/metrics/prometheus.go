package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	operations      *prom.CounterVec
	persistFailures *prom.CounterVec
	tasks           prom.Gauge
}

// NewPrometheusRecorder constructs and registers the task metrics on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		operations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "todolist",
			Name:      "operations_total",
			Help:      "Task store operations by kind and result",
		}, []string{"op", "result"}),
		persistFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "todolist",
			Name:      "persist_failures_total",
			Help:      "Failed reads and writes against the backing store",
		}, []string{"kind"}),
		tasks: prom.NewGauge(prom.GaugeOpts{
			Namespace: "todolist",
			Name:      "tasks",
			Help:      "Number of tasks currently held by the store",
		}),
	}
	reg.MustRegister(pr.operations, pr.persistFailures, pr.tasks)
	return pr
}

func (p *PrometheusRecorder) ObserveOperation(op, result string) {
	p.operations.WithLabelValues(op, result).Inc()
}

func (p *PrometheusRecorder) IncPersistFailure(kind string) {
	p.persistFailures.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetTasks(n int) {
	p.tasks.Set(float64(n))
}

// HTTPHandler returns an http.Handler that serves the metrics in reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
