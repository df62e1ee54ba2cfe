// Package sink turns resolved URLs and in-memory payloads into saved files.
package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/vidgrab/vidgrab/media"
	"github.com/vidgrab/vidgrab/util"
)

// ProgressFunc is called as bytes are written, with the running downloaded
// and expected totals for the current save.
type ProgressFunc func(downloaded int, expected int)

// File saves into a target directory. Writes go to a temporary ".part" file
// which is renamed into place only on success, so a half-written download is
// never published under its final name.
type File struct {
	targetDir string
	client    *http.Client
	progress  ProgressFunc
}

type FileBuilder struct {
	targetDir string
	client    *http.Client
	progress  ProgressFunc
}

func NewFileBuilder() *FileBuilder {
	return &FileBuilder{
		targetDir: ".",
		client:    http.DefaultClient,
	}
}

func (b *FileBuilder) WithTargetDir(dir string) *FileBuilder {
	b.targetDir = dir
	return b
}

func (b *FileBuilder) WithHTTPClient(client *http.Client) *FileBuilder {
	b.client = client
	return b
}

func (b *FileBuilder) WithProgress(f ProgressFunc) *FileBuilder {
	b.progress = f
	return b
}

func (b *FileBuilder) Build() (*File, error) {
	if err := os.MkdirAll(b.targetDir, 0775); err != nil {
		return nil, fmt.Errorf("failed to create target dir: %w", err)
	}
	return &File{
		targetDir: b.targetDir,
		client:    b.client,
		progress:  b.progress,
	}, nil
}

func (f *File) FromURL(ctx context.Context, url string, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download failed: unexpected status %s", resp.Status)
	}

	tracker := &progressTracker{report: f.progress}
	if resp.ContentLength > 0 {
		tracker.AddExpectedBytes(int(resp.ContentLength))
	}
	return f.saveStream(filename, &readerContext{ctx: ctx, r: resp.Body}, tracker)
}

func (f *File) FromBlob(_ context.Context, blob *media.Blob, filename string) error {
	if !util.HasMediaExtension(filename) {
		filename += util.ExtensionForContentType(blob.ContentType)
	}
	tracker := &progressTracker{report: f.progress}
	tracker.AddExpectedBytes(len(blob.Data))
	return f.saveStream(filename, bytes.NewReader(blob.Data), tracker)
}

func (f *File) saveStream(filename string, stream io.Reader, tracker *progressTracker) error {
	targetPath := filepath.Join(f.targetDir, path.Base(filename))
	partPath := targetPath + ".part"

	file, err := os.Create(partPath)
	if err != nil {
		return fmt.Errorf("failed to open target file: %w", err)
	}
	_, err = io.Copy(io.MultiWriter(file, tracker), stream)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(partPath)
		return fmt.Errorf("failed to save stream: %w", err)
	}
	if err := os.Rename(partPath, targetPath); err != nil {
		_ = os.Remove(partPath)
		return fmt.Errorf("failed to finalize file: %w", err)
	}
	return nil
}

// progressTracker counts bytes through Write, so it can be the last writer in
// an io.MultiWriter without consuming the data.
type progressTracker struct {
	report     ProgressFunc
	downloaded int
	expected   int
}

func (t *progressTracker) AddExpectedBytes(n int) {
	t.expected += n
	if t.report != nil {
		t.report(t.downloaded, t.expected)
	}
}

func (t *progressTracker) Write(p []byte) (int, error) {
	t.downloaded += len(p)
	if t.report != nil {
		t.report(t.downloaded, t.expected)
	}
	return len(p), nil
}

// A context-aware io.Reader wrapper, so a canceled context aborts an
// in-progress copy at the next read.
type readerContext struct {
	ctx context.Context
	r   io.Reader
}

func (r *readerContext) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
