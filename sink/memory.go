package sink

import (
	"context"
	"sync"

	"github.com/vidgrab/vidgrab/media"
)

// Memory records every handoff instead of saving files. Useful for tests and
// dry runs.
type Memory struct {
	mu    sync.Mutex
	urls  []URLSave
	blobs []BlobSave

	// FailURL/FailBlob, when set, are returned by the corresponding method.
	FailURL  error
	FailBlob error
}

type URLSave struct {
	URL      string
	Filename string
}

type BlobSave struct {
	Filename    string
	ContentType string
	Size        int
}

func (m *Memory) FromURL(_ context.Context, url string, filename string) error {
	if m.FailURL != nil {
		return m.FailURL
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, URLSave{URL: url, Filename: filename})
	return nil
}

func (m *Memory) FromBlob(_ context.Context, blob *media.Blob, filename string) error {
	if m.FailBlob != nil {
		return m.FailBlob
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs = append(m.blobs, BlobSave{Filename: filename, ContentType: blob.ContentType, Size: len(blob.Data)})
	return nil
}

func (m *Memory) URLs() []URLSave {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]URLSave(nil), m.urls...)
}

func (m *Memory) Blobs() []BlobSave {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]BlobSave(nil), m.blobs...)
}

// Count returns the total number of handoffs seen.
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.urls) + len(m.blobs)
}
