package mock

import "github.com/fwojciec/propcap"

var _ propcap.Converter = (*Converter)(nil)

// Converter is a mock implementation of propcap.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
