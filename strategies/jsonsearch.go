package strategies

import (
	"context"
	"fmt"
	"regexp"

	"github.com/bitly/go-simplejson"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/generic"
	"github.com/vidgrab/vidgrab/media"
)

// mediaURLPattern matches URL-shaped substrings pointing at a media file,
// with an optional query string.
var mediaURLPattern = regexp.MustCompile(`https?://[^\s"'\\<>]+\.(?:mp4|webm)(?:\?[^\s"'\\<>]*)?`)

// jsonMediaKeys are object keys whose string values are treated as candidate
// media URLs when walking structured JSON blocks.
var jsonMediaKeys = generic.NewSet(
	"contentUrl",
	"contentURL",
	"video_url",
	"videoUrl",
	"playbackUrl",
	"src",
)

// JSONSearch scans the owning page's embedded JSON script blocks and inline
// state objects for media URLs. Finding nothing is NotApplicable; crashing
// while searching (a script block that declares JSON but doesn't parse) is a
// fault.
type JSONSearch struct{}

func (JSONSearch) Name() string {
	return "json-search"
}

func (JSONSearch) IsApplicable(element *media.Element) bool {
	return element.Page != nil && len(element.Page.Scripts) > 0
}

func (JSONSearch) Attempt(ctx context.Context, req *vidgrab.Request) error {
	seen := generic.NewSet[string]()
	var candidates []string
	add := func(candidate string) {
		if seen.Add(candidate) {
			candidates = append(candidates, candidate)
		}
	}

	for _, script := range req.Element.Page.Scripts {
		if script.IsJSON() {
			parsed, err := simplejson.NewJson([]byte(script.Text))
			if err != nil {
				return fmt.Errorf("malformed JSON script block: %w", err)
			}
			walkJSON(parsed.Interface(), "", add)
		}
		for _, match := range mediaURLPattern.FindAllString(script.Text, -1) {
			add(match)
		}
	}

	for _, candidate := range candidates {
		if parsed, ok := media.WebURL(candidate); ok {
			return req.SaveURL(ctx, parsed.String())
		}
	}
	return vidgrab.ErrNotApplicable
}

// walkJSON visits every string value, collecting those that look like media
// URLs either by key or by shape.
func walkJSON(value interface{}, key string, add func(string)) {
	switch v := value.(type) {
	case map[string]interface{}:
		for childKey, child := range v {
			walkJSON(child, childKey, add)
		}
	case []interface{}:
		for _, child := range v {
			walkJSON(child, key, add)
		}
	case string:
		if mediaURLPattern.MatchString(v) {
			add(v)
		} else if jsonMediaKeys.Contains(key) {
			if _, ok := media.WebURL(v); ok {
				add(v)
			}
		}
	}
}
