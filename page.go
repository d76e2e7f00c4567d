package propcap

import (
	"context"
	"time"
)

// PageSnapshot is the page access handle: the already-rendered state of one
// travel-listing page. All source readers operate on it synchronously; the
// engine performs no I/O of its own.
type PageSnapshot struct {
	// URL is the page address the snapshot was taken from.
	URL string

	// HTML is the fully rendered markup, including embedded data islands.
	HTML string

	// FetchedAt records when the snapshot was taken.
	FetchedAt time.Time
}

// Reader extracts a sparse partial record from one specific origin type on
// the page. A nil fragment with a nil error means the source is absent.
// Readers are independent: a failure inside one reader degrades to absent and
// must never affect another reader or abort the merge.
type Reader interface {
	// Name identifies the reader for logging.
	Name() string

	// Read returns the fields this source can populate, or nil if the
	// source is not present on the page.
	Read(snap *PageSnapshot) (*Property, error)
}

// Capturer runs one capture invocation against a page snapshot.
type Capturer interface {
	Capture(snap *PageSnapshot) (*Capture, error)
}

// Fetcher retrieves rendered HTML from a URL. Implementations hide HTTP vs
// browser rendering.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Converter converts HTML to Markdown. The engine uses it to clean rich-text
// descriptions before they reach the canonical record.
type Converter interface {
	Convert(html string) (string, error)
}

// SavedCapture is a capture persisted to an accumulating dataset.
type SavedCapture struct {
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	ContentHash string   `json:"contentHash"`
	SavedAt     string   `json:"savedAt"`
	Capture     *Capture `json:"capture"`
}

// CaptureFilter filters FindCaptures results.
type CaptureFilter struct {
	ID     *string `json:"id"`
	Source *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CaptureStore appends captures to an accumulating dataset.
type CaptureStore interface {
	// SaveCapture persists a capture. Returns ECONFLICT if an identical
	// capture (same source and content hash) has already been saved.
	SaveCapture(ctx context.Context, capture *Capture) (*SavedCapture, error)

	// FindCaptures retrieves saved captures matching the filter, newest
	// first.
	FindCaptures(ctx context.Context, filter CaptureFilter) ([]*SavedCapture, error)
}

// CaptureWriter exports captures as standalone files.
type CaptureWriter interface {
	// WriteCapture writes a capture and returns the path it was written to.
	WriteCapture(ctx context.Context, capture *Capture) (path string, err error)
}

// Result is the transport envelope for a capture invocation: either the
// record or a single structured error, never both.
type Result struct {
	OK    bool     `json:"ok"`
	Data  *Capture `json:"data,omitempty"`
	Error string   `json:"error,omitempty"`
}

// NewResult converts a capture outcome into a Result envelope.
func NewResult(capture *Capture, err error) Result {
	if err != nil {
		return Result{OK: false, Error: ErrorMessage(err)}
	}
	return Result{OK: true, Data: capture}
}
