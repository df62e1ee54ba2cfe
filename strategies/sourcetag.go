package strategies

import (
	"context"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/media"
)

// SourceTag uses the first nested source tag with a concrete URL.
type SourceTag struct{}

func (SourceTag) Name() string {
	return "source-tag"
}

func (SourceTag) IsApplicable(element *media.Element) bool {
	return len(element.Sources) > 0
}

func (SourceTag) Attempt(ctx context.Context, req *vidgrab.Request) error {
	for _, source := range req.Element.Sources {
		if parsed, ok := media.WebURL(source.URL); ok {
			return req.SaveURL(ctx, parsed.String())
		}
	}
	return vidgrab.ErrNotApplicable
}
