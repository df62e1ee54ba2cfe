package sink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/vidgrab/vidgrab/media"
)

func TestFileFromURL(t *testing.T) {
	assert := assert_.New(t)
	payload := []byte("not really an mp4")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	var lastDownloaded, lastExpected int
	sink, err := NewFileBuilder().
		WithTargetDir(dir).
		WithProgress(func(downloaded, expected int) {
			lastDownloaded, lastExpected = downloaded, expected
		}).
		Build()
	assert.Nil(err)

	assert.Nil(sink.FromURL(context.Background(), server.URL+"/a.mp4", "a.mp4"))
	saved, err := os.ReadFile(filepath.Join(dir, "a.mp4"))
	assert.Nil(err)
	assert.Equal(payload, saved)
	assert.Equal(len(payload), lastDownloaded)
	assert.Equal(len(payload), lastExpected)

	// No leftover .part file
	_, err = os.Stat(filepath.Join(dir, "a.mp4.part"))
	assert.True(os.IsNotExist(err))
}

func TestFileFromURLBadStatus(t *testing.T) {
	assert := assert_.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dir := t.TempDir()
	sink, err := NewFileBuilder().WithTargetDir(dir).Build()
	assert.Nil(err)

	assert.NotNil(sink.FromURL(context.Background(), server.URL+"/missing.mp4", "missing.mp4"))
	_, err = os.Stat(filepath.Join(dir, "missing.mp4"))
	assert.True(os.IsNotExist(err), "failed download must not publish a file")
}

func TestFileFromBlob(t *testing.T) {
	assert := assert_.New(t)
	dir := t.TempDir()
	sink, err := NewFileBuilder().WithTargetDir(dir).Build()
	assert.Nil(err)

	blob := &media.Blob{Data: []byte{0, 1, 2, 3}, ContentType: "video/webm"}
	assert.Nil(sink.FromBlob(context.Background(), blob, "clip.webm"))
	saved, err := os.ReadFile(filepath.Join(dir, "clip.webm"))
	assert.Nil(err)
	assert.Equal(blob.Data, saved)
}

func TestFileFromBlobAddsMissingExtension(t *testing.T) {
	assert := assert_.New(t)
	dir := t.TempDir()
	sink, err := NewFileBuilder().WithTargetDir(dir).Build()
	assert.Nil(err)

	blob := &media.Blob{Data: []byte("x"), ContentType: "video/webm"}
	assert.Nil(sink.FromBlob(context.Background(), blob, "clip"))
	_, err = os.Stat(filepath.Join(dir, "clip.webm"))
	assert.Nil(err)
}

func TestFileFilenameIsBasenamed(t *testing.T) {
	assert := assert_.New(t)
	dir := t.TempDir()
	sink, err := NewFileBuilder().WithTargetDir(dir).Build()
	assert.Nil(err)

	blob := &media.Blob{Data: []byte("x"), ContentType: "video/mp4"}
	assert.Nil(sink.FromBlob(context.Background(), blob, "../escape.mp4"))
	_, err = os.Stat(filepath.Join(dir, "escape.mp4"))
	assert.Nil(err, "filename should be reduced to its base name inside the target dir")
}

func TestFileFromURLCanceledContext(t *testing.T) {
	assert := assert_.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	sink, err := NewFileBuilder().WithTargetDir(t.TempDir()).Build()
	assert.Nil(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NotNil(sink.FromURL(ctx, server.URL+"/a.mp4", "a.mp4"))
}
