package vidgrab

// Event is a fire-and-forget lifecycle notification published during a grab.
// The core does not depend on subscribers existing or responding.
type Event interface {
	GrabID() ID
	Filename() string
}

// EventSender receives published events. Satisfied by
// pubsub.Publisher[Event]; Send must not block indefinitely.
type EventSender interface {
	Send(Event) bool
}

type grabEvent struct {
	id       ID
	filename string
}

func (e grabEvent) GrabID() ID {
	return e.id
}

func (e grabEvent) Filename() string {
	return e.filename
}

// Started is published before the first strategy is attempted.
type Started struct {
	grabEvent
}

// ResolvedURL is published when a strategy hands a URL to the sink.
type ResolvedURL struct {
	grabEvent
	Strategy string
	URL      string
}

// ResolvedBlob is published when a strategy hands an in-memory payload to the
// sink.
type ResolvedBlob struct {
	grabEvent
	Strategy    string
	Size        int
	ContentType string
}

// CaptureStarted is published when a strategy opens a live capture stream.
type CaptureStarted struct {
	grabEvent
	Strategy string
}

// CaptureStopped is published when a capture stream is released.
type CaptureStopped struct {
	grabEvent
	Strategy string
	Chunks   int
}

// Succeeded is published when a strategy initiates a download and the chain
// stops.
type Succeeded struct {
	grabEvent
	Strategy string
}

// StrategyFaulted is published when a strategy attempts and fails; the chain
// continues.
type StrategyFaulted struct {
	grabEvent
	Strategy string
	Err      error
}

// Failed is published when the whole chain is exhausted with no download.
type Failed struct {
	grabEvent
	Err error
}

// Updated is published on every GrabState transition.
type Updated struct {
	grabEvent
	Old GrabState
	New GrabState
}
