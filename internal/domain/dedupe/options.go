package dedupe

type options struct {
	capacity int
}

// Option configures NewYearSet.
type Option func(*options)

// WithCapacity presizes the set for the expected number of finals.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
