// Package strategies provides the standard acquisition chain, ordered
// cheapest/most-likely first, most-expensive/least-reliable last. Import it
// for its side effect of populating vidgrab.DefaultStrategyRegistry.
package strategies

import (
	"github.com/vidgrab/vidgrab"
)

// Chain positions. Lower runs earlier.
const (
	priorityDirect    int16 = 10
	prioritySourceTag int16 = 20
	priorityDataAttr  int16 = 30
	priorityJSON      int16 = 40
	priorityBlobFetch int16 = 50
	priorityCapture   int16 = 60
)

func init() {
	vidgrab.DefaultStrategyRegistry.MustAdd("direct", priorityDirect, func() vidgrab.Strategy { return &Direct{} })
	vidgrab.DefaultStrategyRegistry.MustAdd("source-tag", prioritySourceTag, func() vidgrab.Strategy { return &SourceTag{} })
	vidgrab.DefaultStrategyRegistry.MustAdd("data-attr", priorityDataAttr, func() vidgrab.Strategy { return &DataAttr{} })
	vidgrab.DefaultStrategyRegistry.MustAdd("json-search", priorityJSON, func() vidgrab.Strategy { return &JSONSearch{} })
	vidgrab.DefaultStrategyRegistry.MustAdd("blob-fetch", priorityBlobFetch, func() vidgrab.Strategy { return &BlobFetch{} })
	vidgrab.DefaultStrategyRegistry.MustAdd("capture", priorityCapture, func() vidgrab.Strategy { return &Capture{} })
}
