package store

import "time"

// MetricsObserver receives store events.
type MetricsObserver interface {
	// OnOpen is called once per Open with the number of dictionary records.
	OnOpen(d time.Duration, records int, err error)

	// OnLookup is called for every point lookup.
	OnLookup(d time.Duration, found bool, err error)
}

// NoopMetricsObserver discards all events.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnOpen(time.Duration, int, error)    {}
func (NoopMetricsObserver) OnLookup(time.Duration, bool, error) {}
