package mock

import "github.com/fwojciec/propcap"

var _ propcap.Capturer = (*Capturer)(nil)

// Capturer is a mock implementation of propcap.Capturer.
type Capturer struct {
	CaptureFn func(snap *propcap.PageSnapshot) (*propcap.Capture, error)
}

func (c *Capturer) Capture(snap *propcap.PageSnapshot) (*propcap.Capture, error) {
	return c.CaptureFn(snap)
}
