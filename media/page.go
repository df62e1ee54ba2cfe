package media

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Script is one script block from a host page.
type Script struct {
	// Type is the script element's declared type, "" for plain javascript.
	Type string
	Text string
}

// IsJSON reports whether the script block declares a JSON payload.
func (s Script) IsJSON() bool {
	mediaType := strings.TrimSpace(strings.SplitN(s.Type, ";", 2)[0])
	return mediaType == "application/json" || mediaType == "application/ld+json"
}

// Page is the parsed host document: the video elements found in it, plus the
// script blocks that embedded state can be recovered from.
type Page struct {
	URL      *url.URL
	Scripts  []Script
	elements []*Element
}

// Videos returns the page's video elements in document order.
func (p *Page) Videos() []*Element {
	return p.elements
}

// ParsePage extracts video elements and script blocks from an HTML document.
// Relative source URLs are resolved against base (which may be nil).
func ParsePage(r io.Reader, base *url.URL) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	page := &Page{URL: base}

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		page.Scripts = append(page.Scripts, Script{
			Type: sel.AttrOr("type", ""),
			Text: text,
		})
	})

	doc.Find("video").Each(func(_ int, sel *goquery.Selection) {
		element := &Element{
			Src:      resolveURL(base, sel.AttrOr("src", "")),
			Dataset:  datasetOf(sel),
			Duration: durationOf(sel),
			Page:     page,
		}
		sel.Find("source").Each(func(_ int, source *goquery.Selection) {
			element.Sources = append(element.Sources, Source{
				URL:  resolveURL(base, source.AttrOr("src", "")),
				Type: source.AttrOr("type", ""),
			})
		})
		page.elements = append(page.elements, element)
	})

	return page, nil
}

// datasetOf collects data-* attributes, keyed without the "data-" prefix.
func datasetOf(sel *goquery.Selection) map[string]string {
	node := sel.Get(0)
	if node == nil {
		return nil
	}
	var dataset map[string]string
	for _, attr := range node.Attr {
		if key := strings.TrimPrefix(attr.Key, "data-"); key != attr.Key && key != "" {
			if dataset == nil {
				dataset = make(map[string]string)
			}
			dataset[key] = attr.Val
		}
	}
	return dataset
}

func durationOf(sel *goquery.Selection) time.Duration {
	raw := sel.AttrOr("duration", sel.AttrOr("data-duration", ""))
	if raw == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// resolveURL makes s absolute against base. Opaque references and absolute
// URLs pass through untouched.
func resolveURL(base *url.URL, s string) string {
	if s == "" || base == nil || OpaqueURL(s) {
		return s
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return s
	}
	return base.ResolveReference(parsed).String()
}
