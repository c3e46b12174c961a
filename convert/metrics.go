package convert

import "time"

// MetricsObserver receives conversion events.
type MetricsObserver interface {
	// OnRecord is called after a record was written, with its vector size.
	OnRecord(bytes int)

	// OnConvert is called once per conversion run.
	OnConvert(d time.Duration, records int, err error)
}

// NoopMetricsObserver discards all events.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnRecord(int)                         {}
func (NoopMetricsObserver) OnConvert(time.Duration, int, error) {}
