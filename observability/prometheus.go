package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/glovebin/cache"
	"github.com/hupe1980/glovebin/convert"
	"github.com/hupe1980/glovebin/store"
)

const namespace = "glovebin"

// PrometheusObserver implements the store, cache and convert
// MetricsObserver interfaces.
type PrometheusObserver struct {
	opLatency    *prometheus.HistogramVec
	lookups      *prometheus.CounterVec
	storeRecords prometheus.Gauge
	cacheEvents  *prometheus.CounterVec
	records      prometheus.Counter
	bytes        prometheus.Counter
	conversions  *prometheus.CounterVec
}

var (
	_ store.MetricsObserver   = (*PrometheusObserver)(nil)
	_ cache.MetricsObserver   = (*PrometheusObserver)(nil)
	_ convert.MetricsObserver = (*PrometheusObserver)(nil)
)

// NewPrometheusObserver creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PrometheusObserver{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of store operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "status"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Point lookups by result.",
		}, []string{"result"}),
		storeRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_records",
			Help:      "Dictionary records of the most recently opened store.",
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache events by cache name and event.",
		}, []string{"cache", "event"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "convert_records_total",
			Help:      "Records written by conversions.",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "convert_vector_bytes_total",
			Help:      "Vector bytes written by conversions.",
		}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversion runs by status.",
		}, []string{"status"}),
	}

	for _, c := range []prometheus.Collector{
		o.opLatency, o.lookups, o.storeRecords, o.cacheEvents, o.records, o.bytes, o.conversions,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (o *PrometheusObserver) OnOpen(d time.Duration, records int, err error) {
	o.opLatency.WithLabelValues("open", status(err)).Observe(d.Seconds())
	if err == nil {
		o.storeRecords.Set(float64(records))
	}
}

func (o *PrometheusObserver) OnLookup(d time.Duration, found bool, err error) {
	o.opLatency.WithLabelValues("lookup", status(err)).Observe(d.Seconds())
	switch {
	case err != nil:
		o.lookups.WithLabelValues("error").Inc()
	case found:
		o.lookups.WithLabelValues("found").Inc()
	default:
		o.lookups.WithLabelValues("absent").Inc()
	}
}

func (o *PrometheusObserver) OnCacheHit(name string) {
	o.cacheEvents.WithLabelValues(name, "hit").Inc()
}

func (o *PrometheusObserver) OnCacheMiss(name string) {
	o.cacheEvents.WithLabelValues(name, "miss").Inc()
}

func (o *PrometheusObserver) OnCacheSet(name string, admitted bool) {
	if admitted {
		o.cacheEvents.WithLabelValues(name, "set").Inc()
		return
	}
	o.cacheEvents.WithLabelValues(name, "rejected").Inc()
}

func (o *PrometheusObserver) OnRecord(bytes int) {
	o.records.Inc()
	o.bytes.Add(float64(bytes))
}

func (o *PrometheusObserver) OnConvert(d time.Duration, _ int, err error) {
	o.opLatency.WithLabelValues("convert", status(err)).Observe(d.Seconds())
	o.conversions.WithLabelValues(status(err)).Inc()
}

// WriteTextfile writes all metrics gathered by g to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
