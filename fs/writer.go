// Package fs provides file-based export of captures.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/propcap"
)

// URLToPath converts a listing URL to a relative file path.
// Example: https://www.booking.com/hotel/pt/aurora.html → www.booking.com/hotel/pt/aurora.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", propcap.Errorf(propcap.EINVALID, "url has no host: %q", rawURL)
	}

	path := strings.TrimPrefix(u.Path, "/")

	// Root or trailing slash becomes index.json.
	if path == "" {
		return filepath.Join(u.Host, "index.json"), nil
	}
	if strings.HasSuffix(path, "/") {
		return filepath.Join(u.Host, path, "index.json"), nil
	}

	// Replace the original extension, if any, with .json.
	if ext := filepath.Ext(path); ext != "" {
		path = strings.TrimSuffix(path, ext)
	}
	return filepath.Join(u.Host, path+".json"), nil
}

// Ensure Writer implements propcap.CaptureWriter at compile time.
var _ propcap.CaptureWriter = (*Writer)(nil)

// Writer writes captures as JSON files under a base directory, one file per
// source URL.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteCapture writes a capture to disk as an indented JSON file and returns
// the full path it was written to.
func (w *Writer) WriteCapture(ctx context.Context, capture *propcap.Capture) (string, error) {
	if capture == nil {
		return "", propcap.Errorf(propcap.EINVALID, "capture is required")
	}

	relPath, err := URLToPath(capture.Source)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(capture, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, append(data, '\n'), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
