package strategies

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/media"
)

// captureWindow caps how long a live capture may record.
const captureWindow = 5 * time.Second

const captureChunkSize = 32 * 1024

// Capture is the last resort: record the element's live playback stream for
// min(duration, 5s) and hand the assembled recording to the blob sink. The
// stream is always released, whatever path the attempt takes. A recorder
// error, or a recording with zero chunks, is a fault.
type Capture struct{}

func (Capture) Name() string {
	return "capture"
}

func (Capture) IsApplicable(element *media.Element) bool {
	return element.Capture != nil
}

func (Capture) Attempt(ctx context.Context, req *vidgrab.Request) error {
	window := captureWindow
	if d := req.Element.Duration; d > 0 && d < window {
		window = d
	}

	stream, err := req.Element.Capture(ctx)
	if err != nil {
		return fmt.Errorf("failed to open capture stream: %w", err)
	}
	defer stream.Close()
	req.CaptureStarted()

	recordCtx, cancel := context.WithTimeout(ctx, window)
	defer cancel()
	chunks, err := record(recordCtx, stream)
	req.CaptureStopped(len(chunks))
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("capture produced no data")
	}

	blob := &media.Blob{
		Data:        bytes.Join(chunks, nil),
		ContentType: "video/webm",
	}
	return req.SaveBlob(ctx, blob)
}

type captureChunk struct {
	data []byte
	err  error
}

// record pumps the stream until EOF, a read error, or the context deadline.
// Chunks read before an error are returned alongside it.
func record(ctx context.Context, stream io.Reader) ([][]byte, error) {
	pump := make(chan captureChunk)
	go func() {
		for {
			buf := make([]byte, captureChunkSize)
			n, err := stream.Read(buf)
			chunk := captureChunk{err: err}
			if n > 0 {
				chunk.data = buf[:n]
			}
			select {
			case pump <- chunk:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	var chunks [][]byte
	for {
		select {
		case chunk := <-pump:
			if chunk.data != nil {
				chunks = append(chunks, chunk.data)
			}
			if chunk.err == io.EOF {
				return chunks, nil
			}
			if chunk.err != nil {
				return chunks, chunk.err
			}
		case <-ctx.Done():
			// Recording window elapsed; keep what we have
			return chunks, nil
		}
	}
}
