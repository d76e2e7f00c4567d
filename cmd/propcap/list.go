package main

import (
	"fmt"

	"github.com/fwojciec/propcap"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := propcap.CaptureFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	captures, err := deps.Captures.FindCaptures(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", propcap.ErrorMessage(err))
		return err
	}

	if len(captures) == 0 {
		fmt.Fprintln(deps.Stdout, "No captures found. Use 'propcap capture --save' to create one.")
		return nil
	}

	for _, sc := range captures {
		name := "(unknown)"
		if sc.Capture != nil && sc.Capture.Property != nil && sc.Capture.Property.Name != nil {
			name = *sc.Capture.Property.Name
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", sc.ID, sc.SavedAt, name, sc.Source)
	}

	return nil
}
