package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/propcap"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	captures, err := deps.Captures.FindCaptures(deps.Ctx, propcap.CaptureFilter{ID: &c.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", propcap.ErrorMessage(err))
		return err
	}
	if len(captures) == 0 {
		err := propcap.Errorf(propcap.ENOTFOUND, "capture %q not found", c.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", propcap.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(captures[0])
}
