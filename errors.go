package vidgrab

import "errors"

var (
	// ErrNotMediaElement is returned when Grab is given something that is not
	// a usable media element. Terminal: no strategies are attempted.
	ErrNotMediaElement = errors.New("not a media element")
	// ErrNotApplicable is returned by a Strategy that has nothing to try for
	// this element. Expected control flow, not an operational failure.
	ErrNotApplicable = errors.New("strategy not applicable")
	// ErrAllStrategiesExhausted is returned when every strategy in the chain
	// was either not applicable or faulted.
	ErrAllStrategiesExhausted = errors.New("all strategies exhausted")

	ErrDuplicateStrategy = errors.New("duplicate strategy name")
	ErrInvalidStrategy   = errors.New("invalid strategy")
	ErrInvalidConfig     = errors.New("invalid grabber config")
)
