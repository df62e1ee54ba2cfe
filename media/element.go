package media

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"
)

// Blob is an in-memory media payload.
type Blob struct {
	Data        []byte
	ContentType string
}

// Source is a nested alternative source for an Element (a `<source>` child).
type Source struct {
	URL  string
	Type string
}

// Element is a read-only view of a playable video on a host page. The core
// never mutates it; strategies only inspect its attributes and invoke its
// optional capabilities.
type Element struct {
	// Src is the element's direct source URL. May be empty, or an opaque
	// reference that is not resolvable as a network URL.
	Src string
	// Sources are the element's nested source tags, in document order.
	Sources []Source
	// Dataset holds the element's data-* attributes, keyed without the
	// "data-" prefix.
	Dataset map[string]string
	// Duration of the media, zero if unknown.
	Duration time.Duration
	// Page is the document the element was found in, nil for detached
	// elements.
	Page *Page

	// FetchBlob resolves the element's opaque source reference to its bytes.
	// Nil when the hosting environment offers no such capability.
	FetchBlob func(ctx context.Context) (*Blob, error)
	// Capture opens a live capture stream for the element's playback. Nil
	// when the hosting environment offers no such capability.
	Capture func(ctx context.Context) (io.ReadCloser, error)
}

// IsValid reports whether the element is a usable media element handle.
func (e *Element) IsValid() bool {
	return e != nil && (e.Src != "" || len(e.Sources) > 0 || len(e.Dataset) > 0 || e.Capture != nil)
}

// Data returns the named data-* attribute (without the "data-" prefix),
// or "" if absent.
func (e *Element) Data(key string) string {
	if e.Dataset == nil {
		return ""
	}
	return e.Dataset[key]
}

var opaqueSchemes = []string{"blob", "data", "mediasource"}

// OpaqueURL reports whether s is an opaque in-memory reference rather than a
// fetchable network URL.
func OpaqueURL(s string) bool {
	for _, scheme := range opaqueSchemes {
		if strings.HasPrefix(s, scheme+":") {
			return true
		}
	}
	return false
}

// WebURL parses s and reports whether it is a usable http(s) URL. Malformed
// candidates are expected and not an error condition, hence the bool return.
func WebURL(s string) (*url.URL, bool) {
	if s == "" || OpaqueURL(s) {
		return nil, false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, false
	}
	if parsed.Host == "" {
		return nil, false
	}
	return parsed, true
}
