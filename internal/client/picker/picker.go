// Package picker implements file selection for image uploads: content-based
// MIME validation and in-memory preview blobs served to the browser.
package picker

import (
	"log/slog"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
)

var acceptedTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// Accepted reports whether data sniffs as one of the supported image types.
// The decision uses file content, never the filename extension.
func Accepted(data []byte) (string, bool) {
	detected := mimetype.Detect(data)
	for accepted := range acceptedTypes {
		if detected.Is(accepted) {
			return detected.String(), true
		}
	}
	return detected.String(), false
}

// Selection is a validated file waiting to be uploaded, plus its preview.
type Selection struct {
	Upload     closet.Upload
	PreviewURL string
}

// Picker holds the current selection and its preview blob. Selecting a new
// file or clearing releases the previous preview.
type Picker struct {
	mu        sync.Mutex
	logger    *slog.Logger
	selection *Selection
	previews  map[string][]byte
	remoteURL string
}

// New builds an empty Picker.
func New(logger *slog.Logger) *Picker {
	return &Picker{
		logger:   logger.With("component", "client.picker"),
		previews: make(map[string][]byte),
	}
}

// Select validates the file and, if accepted, makes it the current selection.
// Rejected files are dropped silently apart from a debug log; the previous
// selection survives.
func (p *Picker) Select(filename string, data []byte) bool {
	mime, ok := Accepted(data)
	if !ok {
		p.logger.Debug("file rejected", "filename", filename, "mime", mime)
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseLocked()

	id := uuid.NewString()
	p.previews[id] = data
	p.selection = &Selection{
		Upload: closet.Upload{
			Filename: filename,
			MimeType: mime,
			Content:  data,
		},
		PreviewURL: "/preview/" + id,
	}
	p.remoteURL = ""
	return true
}

// Selection returns the current validated selection, if any.
func (p *Picker) Selection() (Selection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selection == nil {
		return Selection{}, false
	}
	return *p.selection, true
}

// Preview returns the preview blob for a served URL id.
func (p *Picker) Preview(id string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.previews[id]
	return data, ok
}

// PreviewURL returns the URL to display: the remote image once an upload has
// completed, otherwise the local preview of the pending selection.
func (p *Picker) PreviewURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.remoteURL != "" {
		return p.remoteURL
	}
	if p.selection != nil {
		return p.selection.PreviewURL
	}
	return ""
}

// SetRemotePreview swaps the displayed image to a server-side URL after a
// successful upload, releasing the local blob.
func (p *Picker) SetRemotePreview(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseLocked()
	p.remoteURL = url
}

// Clear drops the selection and releases its preview blob.
func (p *Picker) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseLocked()
	p.remoteURL = ""
}

func (p *Picker) releaseLocked() {
	if p.selection != nil {
		delete(p.previews, previewID(p.selection.PreviewURL))
		p.selection = nil
	}
}

func previewID(url string) string {
	const prefix = "/preview/"
	if len(url) > len(prefix) {
		return url[len(prefix):]
	}
	return ""
}
