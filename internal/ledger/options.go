package ledger

import "time"

// Option adjusts how transactions are matched to calendar periods
type Option func(*options)

type options struct {
	includeExcluded bool
	loc             *time.Location
}

// IncludeExcluded keeps transactions flagged excludeFromCalculations when
// filtering. Aggregates ignore this option; excluded rows never contribute.
func IncludeExcluded() Option {
	return func(o *options) {
		o.includeExcluded = true
	}
}

// InLocation interprets transaction timestamps as calendar dates in loc.
// A nil location means UTC.
func InLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
