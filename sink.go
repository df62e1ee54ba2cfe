package vidgrab

import (
	"context"

	"github.com/vidgrab/vidgrab/media"
)

// A Sink materializes a file-save action from a URL or an in-memory payload.
// Both operations must be safe to call repeatedly and must not retain their
// arguments beyond the call.
type Sink interface {
	FromURL(ctx context.Context, url string, filename string) error
	FromBlob(ctx context.Context, blob *media.Blob, filename string) error
}
