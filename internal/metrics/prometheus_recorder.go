package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jqhoogland/open-dictionary/internal/domain"
)

const namespace = "opendict"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	lookups       *prom.CounterVec
	cache         *prom.CounterVec
	fetchDuration prom.Histogram
	notices       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them, together
// with the Go runtime and process collectors, on reg. A nil reg gets a fresh
// registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		lookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Entry lookups by result",
		}, []string{"result"}),
		cache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_total",
			Help:      "Page cache outcomes",
		}, []string{"outcome"}),
		fetchDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of page fetches from the wiki",
			Buckets:   prom.DefBuckets,
		}),
		notices: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "parse_notices_total",
			Help:      "Parse notices by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		pr.lookups, pr.cache, pr.fetchDuration, pr.notices,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return pr
}

func (p *PrometheusRecorder) IncLookup(r LookupResult) {
	if p == nil {
		return
	}
	p.lookups.WithLabelValues(string(r)).Inc()
}

func (p *PrometheusRecorder) IncCache(o CacheOutcome) {
	if p == nil {
		return
	}
	p.cache.WithLabelValues(string(o)).Inc()
}

func (p *PrometheusRecorder) ObserveFetchDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.fetchDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddParseNotices(ns []domain.Notice) {
	if p == nil {
		return
	}
	for _, n := range ns {
		p.notices.WithLabelValues(string(n.Kind)).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
