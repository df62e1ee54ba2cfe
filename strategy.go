package vidgrab

import (
	"context"
	"errors"

	"github.com/vidgrab/vidgrab/media"
)

// A Strategy is one self-contained heuristic for locating or producing a media
// byte stream for an element and handing it to the request's sink.
type Strategy interface {
	Name() string
	// IsApplicable is a fast, synchronous, side-effect-free pre-filter. A
	// strategy that can only decide by doing work should return true here and
	// defer the real check to Attempt.
	IsApplicable(element *media.Element) bool
	// Attempt tries to initiate a download for the element. It returns nil
	// after handing exactly one URL or blob to the sink, ErrNotApplicable if
	// there was nothing to try, or any other error for an operational fault.
	// Non-applicability is silent; operational failure is reported.
	Attempt(ctx context.Context, req *Request) error
}

// Outcome classifies the result of one strategy attempt, for events and the
// journal.
type Outcome string

const (
	OutcomeInitiated Outcome = "initiated"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFault     Outcome = "fault"
)

// OutcomeOf maps an Attempt error to its Outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeInitiated
	case errors.Is(err, ErrNotApplicable):
		return OutcomeSkipped
	default:
		return OutcomeFault
	}
}
