package strategies

import (
	"context"
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/media"
	"github.com/vidgrab/vidgrab/sink"
)

func pageElement(scripts ...media.Script) *media.Element {
	page := &media.Page{Scripts: scripts}
	element := &media.Element{Src: "blob:abc", Page: page}
	return element
}

func TestJSONSearchInlineState(t *testing.T) {
	assert := assert_.New(t)
	strategy := &JSONSearch{}

	assert.False(strategy.IsApplicable(&media.Element{}))

	element := pageElement(
		media.Script{Text: `var config = {};`},
		media.Script{Text: `window.__STATE__ = {"video": {"url": "https://cdn.example.com/state.mp4?sig=abc"}};`},
	)
	assert.True(strategy.IsApplicable(element))

	recorder := &sink.Memory{}
	req := vidgrab.NewRequest(element, "a.mp4", recorder, nil)
	assert.Nil(strategy.Attempt(context.Background(), req))
	assert.Equal("https://cdn.example.com/state.mp4?sig=abc", recorder.URLs()[0].URL)
}

func TestJSONSearchStructuredBlock(t *testing.T) {
	assert := assert_.New(t)
	strategy := &JSONSearch{}

	element := pageElement(media.Script{
		Type: "application/ld+json",
		Text: `{"@type": "VideoObject", "video": [{"contentUrl": "https://cdn.example.com/ld-video"}]}`,
	})
	recorder := &sink.Memory{}
	req := vidgrab.NewRequest(element, "a.mp4", recorder, nil)
	assert.Nil(strategy.Attempt(context.Background(), req))
	// Known keys are honored even without a media file extension
	assert.Equal("https://cdn.example.com/ld-video", recorder.URLs()[0].URL)
}

func TestJSONSearchDeduplicates(t *testing.T) {
	assert := assert_.New(t)
	strategy := &JSONSearch{}

	element := pageElement(
		media.Script{Text: `"https://cdn.example.com/a.mp4" "https://cdn.example.com/a.mp4"`},
	)
	recorder := &sink.Memory{}
	req := vidgrab.NewRequest(element, "a.mp4", recorder, nil)
	assert.Nil(strategy.Attempt(context.Background(), req))
	assert.Len(recorder.URLs(), 1)
}

func TestJSONSearchMalformedJSONIsFault(t *testing.T) {
	assert := assert_.New(t)
	strategy := &JSONSearch{}

	// A block that declares itself JSON but doesn't parse is a crash while
	// searching, not "found nothing"
	element := pageElement(media.Script{Type: "application/json", Text: `{"broken":`})
	recorder := &sink.Memory{}
	req := vidgrab.NewRequest(element, "a.mp4", recorder, nil)
	err := strategy.Attempt(context.Background(), req)
	assert.NotNil(err)
	assert.NotErrorIs(err, vidgrab.ErrNotApplicable)
	assert.Equal(0, recorder.Count())
}

func TestJSONSearchNothingFound(t *testing.T) {
	assert := assert_.New(t)
	strategy := &JSONSearch{}

	element := pageElement(media.Script{Text: `console.log("no media here");`})
	req := vidgrab.NewRequest(element, "a.mp4", &sink.Memory{}, nil)
	assert.ErrorIs(strategy.Attempt(context.Background(), req), vidgrab.ErrNotApplicable)
}
