package glovebin

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/glovebin/cache"
	"github.com/hupe1980/glovebin/convert"
	"github.com/hupe1980/glovebin/store"
)

// MetricsObserver receives store, cache and conversion events.
// observability.PrometheusObserver implements it.
type MetricsObserver interface {
	store.MetricsObserver
	cache.MetricsObserver
	convert.MetricsObserver
}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount        atomic.Int64
	OpenErrors       atomic.Int64
	LookupCount      atomic.Int64
	LookupFound      atomic.Int64
	LookupErrors     atomic.Int64
	LookupTotalNanos atomic.Int64
	CacheHits        atomic.Int64
	CacheMisses      atomic.Int64
	CacheSets        atomic.Int64
	CacheRejected    atomic.Int64
	RecordsWritten   atomic.Int64
	BytesWritten     atomic.Int64
	ConvertCount     atomic.Int64
	ConvertErrors    atomic.Int64
}

var _ MetricsObserver = (*BasicMetricsCollector)(nil)

// OnOpen implements store.MetricsObserver.
func (b *BasicMetricsCollector) OnOpen(_ time.Duration, _ int, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// OnLookup implements store.MetricsObserver.
func (b *BasicMetricsCollector) OnLookup(d time.Duration, found bool, err error) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(d.Nanoseconds())
	if err != nil {
		b.LookupErrors.Add(1)
	}
	if found {
		b.LookupFound.Add(1)
	}
}

// OnCacheHit implements cache.MetricsObserver.
func (b *BasicMetricsCollector) OnCacheHit(string) { b.CacheHits.Add(1) }

// OnCacheMiss implements cache.MetricsObserver.
func (b *BasicMetricsCollector) OnCacheMiss(string) { b.CacheMisses.Add(1) }

// OnCacheSet implements cache.MetricsObserver.
func (b *BasicMetricsCollector) OnCacheSet(_ string, admitted bool) {
	if admitted {
		b.CacheSets.Add(1)
		return
	}
	b.CacheRejected.Add(1)
}

// OnRecord implements convert.MetricsObserver.
func (b *BasicMetricsCollector) OnRecord(bytes int) {
	b.RecordsWritten.Add(1)
	b.BytesWritten.Add(int64(bytes))
}

// OnConvert implements convert.MetricsObserver.
func (b *BasicMetricsCollector) OnConvert(_ time.Duration, _ int, err error) {
	b.ConvertCount.Add(1)
	if err != nil {
		b.ConvertErrors.Add(1)
	}
}

// MetricsStats is a point-in-time copy of a BasicMetricsCollector.
type MetricsStats struct {
	OpenCount         int64
	LookupCount       int64
	LookupFound       int64
	LookupErrors      int64
	AvgLookupNanos    int64
	CacheHits         int64
	CacheMisses       int64
	CacheHitRate      float64
	RecordsWritten    int64
	ConvertCount      int64
	ConvertErrorCount int64
}

// GetStats returns current metrics statistics.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	lookups := b.LookupCount.Load()
	hits := b.CacheHits.Load()
	misses := b.CacheMisses.Load()

	var avgLookup int64
	if lookups > 0 {
		avgLookup = b.LookupTotalNanos.Load() / lookups
	}
	var hitRate float64
	if hits+misses > 0 {
		hitRate = float64(hits) / float64(hits+misses)
	}

	return MetricsStats{
		OpenCount:         b.OpenCount.Load(),
		LookupCount:       lookups,
		LookupFound:       b.LookupFound.Load(),
		LookupErrors:      b.LookupErrors.Load(),
		AvgLookupNanos:    avgLookup,
		CacheHits:         hits,
		CacheMisses:       misses,
		CacheHitRate:      hitRate,
		RecordsWritten:    b.RecordsWritten.Load(),
		ConvertCount:      b.ConvertCount.Load(),
		ConvertErrorCount: b.ConvertErrors.Load(),
	}
}
