package strategies

import (
	"context"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/media"
)

// dataAttrKeys are the data-* attributes (without the "data-" prefix) that
// vendors commonly use for an alternate source URL, in lookup order.
var dataAttrKeys = []string{"video-src", "video-url", "src", "url", "mp4", "stream"}

// DataAttr uses a vendor data attribute holding an alternate source URL.
// Malformed attribute values are common and are skipped, never faulted.
type DataAttr struct{}

func (DataAttr) Name() string {
	return "data-attr"
}

func (DataAttr) IsApplicable(element *media.Element) bool {
	return len(element.Dataset) > 0
}

func (DataAttr) Attempt(ctx context.Context, req *vidgrab.Request) error {
	for _, key := range dataAttrKeys {
		if parsed, ok := media.WebURL(req.Element.Data(key)); ok {
			return req.SaveURL(ctx, parsed.String())
		}
	}
	return vidgrab.ErrNotApplicable
}
