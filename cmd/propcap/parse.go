package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/propcap"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		wrapped := propcap.Errorf(propcap.EINVALID, "cannot read HTML file: %v", err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", propcap.ErrorMessage(wrapped))
		return wrapped
	}

	url := c.URL
	if url == "" {
		url = "file://" + c.Path
	}

	capture, err := deps.Capturer.Capture(&propcap.PageSnapshot{
		URL:       url,
		HTML:      string(data),
		FetchedAt: time.Now(),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", propcap.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(propcap.NewResult(capture, nil))
}
