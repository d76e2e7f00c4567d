package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/propcap"
	main "github.com/fwojciec/propcap/cmd/propcap"
	"github.com/fwojciec/propcap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCaptureDeps(fetcher *mock.Fetcher) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Fetcher: fetcher,
		Capturer: &mock.Capturer{
			CaptureFn: func(snap *propcap.PageSnapshot) (*propcap.Capture, error) {
				return propcap.NewCapture(snap.URL, time.Now()), nil
			},
		},
	}
	return deps, stdout, stderr
}

func TestCmdCapture(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates urls across arguments and file", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var fetched []string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				mu.Lock()
				defer mu.Unlock()
				fetched = append(fetched, url)
				return "<html></html>", nil
			},
		}
		deps, stdout, _ := newCaptureDeps(fetcher)

		listPath := filepath.Join(t.TempDir(), "urls.txt")
		require.NoError(t, os.WriteFile(listPath, []byte(strings.Join([]string{
			"# batch one",
			"https://www.booking.com/hotel/pt/aurora.html?aid=999",
			"",
			"https://www.agoda.com/hotel-aurora/hotel/lisbon-pt",
		}, "\n")), 0644))

		cmd := &main.CaptureCmd{
			URLs:        []string{"https://www.booking.com/hotel/pt/aurora.html"},
			File:        listPath,
			Concurrency: 2,
		}
		require.NoError(t, cmd.Run(deps))

		assert.Len(t, fetched, 2)
		assert.Equal(t, 2, strings.Count(stdout.String(), `"ok":true`))
	})

	t.Run("a failing fetch does not abort the batch", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if strings.Contains(url, "broken") {
					return "", propcap.Errorf(propcap.EINVALID, "HTTP 503 for %s", url)
				}
				return "<html></html>", nil
			},
		}
		deps, stdout, stderr := newCaptureDeps(fetcher)

		cmd := &main.CaptureCmd{
			URLs: []string{
				"https://example.com/broken",
				"https://example.com/fine",
			},
			Concurrency: 1,
		}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "skip https://example.com/broken")
		assert.Contains(t, stderr.String(), "Captured 1 of 2 pages (1 failed)")
		assert.Equal(t, 1, strings.Count(stdout.String(), `"ok":true`))
		assert.Equal(t, 1, strings.Count(stdout.String(), `"ok":false`))
	})

	t.Run("errors when no urls are given", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newCaptureDeps(&mock.Fetcher{})
		cmd := &main.CaptureCmd{Concurrency: 1}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, propcap.EINVALID, propcap.ErrorCode(err))
	})

	t.Run("writes captures through the writer when configured", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		deps, _, stderr := newCaptureDeps(fetcher)

		var written []string
		deps.Writer = &mock.CaptureWriter{
			WriteCaptureFn: func(ctx context.Context, capture *propcap.Capture) (string, error) {
				written = append(written, capture.Source)
				return "/tmp/out/example.json", nil
			},
		}

		cmd := &main.CaptureCmd{
			URLs:        []string{"https://example.com/hotel"},
			Concurrency: 1,
		}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://example.com/hotel"}, written)
		assert.Contains(t, stderr.String(), "wrote /tmp/out/example.json")
	})
}
