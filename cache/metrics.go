package cache

// MetricsObserver receives cache events, labelled by cache name.
type MetricsObserver interface {
	OnCacheHit(name string)
	OnCacheMiss(name string)
	// OnCacheSet reports whether a present value was admitted.
	OnCacheSet(name string, admitted bool)
}

// NoopMetricsObserver discards all events.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnCacheHit(string)       {}
func (NoopMetricsObserver) OnCacheMiss(string)      {}
func (NoopMetricsObserver) OnCacheSet(string, bool) {}
