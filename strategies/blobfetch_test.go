package strategies

import (
	"context"
	"errors"
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/media"
	"github.com/vidgrab/vidgrab/sink"
)

func TestBlobFetchDataURL(t *testing.T) {
	assert := assert_.New(t)
	strategy := &BlobFetch{}

	assert.False(strategy.IsApplicable(&media.Element{Src: "https://cdn.example.com/a.mp4"}))

	// data: URIs are resolvable without any host-supplied capability
	element := &media.Element{Src: "data:video/mp4;base64,AAECAw=="}
	assert.True(strategy.IsApplicable(element))
	recorder := &sink.Memory{}
	req := vidgrab.NewRequest(element, "a.mp4", recorder, nil)
	assert.Nil(strategy.Attempt(context.Background(), req))
	assert.Equal([]sink.BlobSave{{Filename: "a.mp4", ContentType: "video/mp4", Size: 4}}, recorder.Blobs())
}

func TestBlobFetchResolver(t *testing.T) {
	assert := assert_.New(t)
	strategy := &BlobFetch{}

	element := &media.Element{
		Src: "blob:abc",
		FetchBlob: func(context.Context) (*media.Blob, error) {
			return &media.Blob{Data: []byte("bytes"), ContentType: "video/webm"}, nil
		},
	}
	recorder := &sink.Memory{}
	req := vidgrab.NewRequest(element, "a.webm", recorder, nil)
	assert.Nil(strategy.Attempt(context.Background(), req))
	assert.Equal(5, recorder.Blobs()[0].Size)
}

func TestBlobFetchEmptyBlobIsNotApplicable(t *testing.T) {
	assert := assert_.New(t)
	strategy := &BlobFetch{}

	// A 0-byte payload means unavailability, not malfunction
	element := &media.Element{
		Src: "blob:abc",
		FetchBlob: func(context.Context) (*media.Blob, error) {
			return &media.Blob{Data: nil, ContentType: "video/mp4"}, nil
		},
	}
	recorder := &sink.Memory{}
	req := vidgrab.NewRequest(element, "a.mp4", recorder, nil)
	assert.ErrorIs(strategy.Attempt(context.Background(), req), vidgrab.ErrNotApplicable)
	assert.Equal(0, recorder.Count())
}

func TestBlobFetchWrongContentTypeIsNotApplicable(t *testing.T) {
	assert := assert_.New(t)
	strategy := &BlobFetch{}

	element := &media.Element{
		Src: "blob:abc",
		FetchBlob: func(context.Context) (*media.Blob, error) {
			return &media.Blob{Data: []byte("<html>"), ContentType: "text/html"}, nil
		},
	}
	req := vidgrab.NewRequest(element, "a.mp4", &sink.Memory{}, nil)
	assert.ErrorIs(strategy.Attempt(context.Background(), req), vidgrab.ErrNotApplicable)
}

func TestBlobFetchErrorIsFault(t *testing.T) {
	assert := assert_.New(t)
	strategy := &BlobFetch{}

	element := &media.Element{
		Src: "blob:abc",
		FetchBlob: func(context.Context) (*media.Blob, error) {
			return nil, errors.New("network down")
		},
	}
	req := vidgrab.NewRequest(element, "a.mp4", &sink.Memory{}, nil)
	err := strategy.Attempt(context.Background(), req)
	assert.NotNil(err)
	assert.NotErrorIs(err, vidgrab.ErrNotApplicable)
}

func TestBlobFetchNoResolverIsNotApplicable(t *testing.T) {
	assert := assert_.New(t)
	strategy := &BlobFetch{}

	// blob: references need a host-supplied resolver
	element := &media.Element{Src: "blob:abc"}
	req := vidgrab.NewRequest(element, "a.mp4", &sink.Memory{}, nil)
	assert.ErrorIs(strategy.Attempt(context.Background(), req), vidgrab.ErrNotApplicable)
}
