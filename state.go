package vidgrab

import (
	"github.com/google/uuid"

	"github.com/vidgrab/vidgrab/generic"
)

// ID identifies one Grab invocation.
type ID string

func NewID() ID {
	return ID(generic.Unwrap(uuid.NewRandom()).String())
}

type Status string

const (
	StatusNew      Status = "new"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// GrabState is a snapshot of one grab invocation's progress, published with
// Updated events so consumers can render progress without polling.
type GrabState struct {
	ID       ID
	Filename string
	Status   Status
	// Strategy currently being attempted (or the winning one once complete).
	Strategy string
	// Faults counts strategies that attempted and failed so far.
	Faults int
}
