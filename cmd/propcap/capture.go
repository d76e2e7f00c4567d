package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/propcap"
	"github.com/fwojciec/propcap/bloom"
	"golang.org/x/sync/errgroup"
)

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	urls, err := c.collectURLs()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", propcap.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		return propcap.Errorf(propcap.EINVALID, "no URLs given; pass them as arguments or via --file")
	}

	var mu sync.Mutex // guards stdout and the counters
	enc := json.NewEncoder(deps.Stdout)
	var captured, failed int

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)

	for _, url := range urls {
		g.Go(func() error {
			capture, err := c.captureOne(deps, url)

			mu.Lock()
			defer mu.Unlock()
			if err := ctx.Err(); err != nil {
				return err
			}
			if err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", url, propcap.ErrorMessage(err))
			} else {
				captured++
			}
			return enc.Encode(propcap.NewResult(capture, err))
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if len(urls) > 1 {
		fmt.Fprintf(deps.Stderr, "Captured %d of %d pages (%d failed)\n", captured, len(urls), failed)
	}
	return nil
}

func (c *CaptureCmd) captureOne(deps *Dependencies, url string) (*propcap.Capture, error) {
	html, err := deps.Fetcher.Fetch(deps.Ctx, url)
	if err != nil {
		return nil, err
	}

	capture, err := deps.Capturer.Capture(&propcap.PageSnapshot{
		URL:       url,
		HTML:      html,
		FetchedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	if deps.Writer != nil {
		path, err := deps.Writer.WriteCapture(deps.Ctx, capture)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(deps.Stderr, "  wrote %s\n", path)
	}

	if c.Save {
		switch _, err := deps.Captures.SaveCapture(deps.Ctx, capture); propcap.ErrorCode(err) {
		case "":
		case propcap.ECONFLICT:
			fmt.Fprintf(deps.Stderr, "  already saved: %s\n", url)
		default:
			return nil, err
		}
	}

	return capture, nil
}

// collectURLs merges argument URLs with the --file list and drops duplicate
// listings. Input lists routinely repeat a listing under different tracking
// parameters, so de-duplication uses a canonicalizing seen-filter.
func (c *CaptureCmd) collectURLs() ([]string, error) {
	urls := append([]string{}, c.URLs...)

	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return nil, propcap.Errorf(propcap.EINVALID, "cannot read URL file: %v", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			urls = append(urls, line)
		}
	}

	seen := bloom.NewSeenFilter(uint(len(urls))+1, 0.001)
	unique := urls[:0]
	for _, u := range urls {
		if !seen.Seen(u) {
			unique = append(unique, u)
		}
	}
	return unique, nil
}
