package vidgrab

import (
	"context"
	"fmt"

	"github.com/vidgrab/vidgrab/media"
)

// A Request is one strategy chain run against one element. Strategies hand
// media to the sink only through SaveURL/SaveBlob, which also publish the
// corresponding events.
type Request struct {
	Element  *media.Element
	Filename string

	id       ID
	strategy string
	sink     Sink
	events   EventSender
}

// NewRequest builds a standalone request for driving a Strategy outside a
// Grabber (tests, embedding). events may be nil.
func NewRequest(element *media.Element, filename string, sink Sink, events EventSender) *Request {
	return &Request{
		Element:  element,
		Filename: filename,
		id:       NewID(),
		sink:     sink,
		events:   events,
	}
}

// SaveURL hands a resolved URL to the sink.
func (r *Request) SaveURL(ctx context.Context, url string) error {
	r.publish(ResolvedURL{r.base(), r.strategy, url})
	if err := r.sink.FromURL(ctx, url, r.Filename); err != nil {
		return fmt.Errorf("url sink: %w", err)
	}
	return nil
}

// SaveBlob hands an in-memory payload to the sink.
func (r *Request) SaveBlob(ctx context.Context, blob *media.Blob) error {
	r.publish(ResolvedBlob{r.base(), r.strategy, len(blob.Data), blob.ContentType})
	if err := r.sink.FromBlob(ctx, blob, r.Filename); err != nil {
		return fmt.Errorf("blob sink: %w", err)
	}
	return nil
}

// CaptureStarted notifies subscribers that a live capture stream was opened.
func (r *Request) CaptureStarted() {
	r.publish(CaptureStarted{r.base(), r.strategy})
}

// CaptureStopped notifies subscribers that a live capture stream was released.
func (r *Request) CaptureStopped(chunks int) {
	r.publish(CaptureStopped{r.base(), r.strategy, chunks})
}

func (r *Request) base() grabEvent {
	return grabEvent{id: r.id, filename: r.Filename}
}

func (r *Request) publish(event Event) {
	if r.events != nil {
		r.events.Send(event)
	}
}
