package strategies

import (
	"context"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/media"
)

// Direct uses the element's own source URL, when it is a real network URL
// rather than an opaque in-memory reference.
type Direct struct{}

func (Direct) Name() string {
	return "direct"
}

func (Direct) IsApplicable(element *media.Element) bool {
	return element.Src != "" && !media.OpaqueURL(element.Src)
}

func (Direct) Attempt(ctx context.Context, req *vidgrab.Request) error {
	parsed, ok := media.WebURL(req.Element.Src)
	if !ok {
		return vidgrab.ErrNotApplicable
	}
	return req.SaveURL(ctx, parsed.String())
}
