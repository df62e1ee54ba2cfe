package strategies

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/media"
)

// BlobFetch resolves an opaque in-memory source reference to its bytes and
// hands them to the blob sink. An empty payload means the media is simply
// unavailable (NotApplicable); a failed fetch is a fault.
type BlobFetch struct{}

func (BlobFetch) Name() string {
	return "blob-fetch"
}

func (BlobFetch) IsApplicable(element *media.Element) bool {
	return media.OpaqueURL(element.Src)
}

func (BlobFetch) Attempt(ctx context.Context, req *vidgrab.Request) error {
	element := req.Element
	fetch := element.FetchBlob
	if fetch == nil && strings.HasPrefix(element.Src, "data:") {
		fetch = func(context.Context) (*media.Blob, error) {
			return media.DecodeDataURL(element.Src)
		}
	}
	if fetch == nil {
		return vidgrab.ErrNotApplicable
	}

	blob, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch opaque source: %w", err)
	}
	if blob == nil || len(blob.Data) == 0 {
		return vidgrab.ErrNotApplicable
	}
	if !strings.HasPrefix(blob.ContentType, "video/") {
		return vidgrab.ErrNotApplicable
	}
	return req.SaveBlob(ctx, blob)
}
