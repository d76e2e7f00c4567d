package mock

import "github.com/fwojciec/propcap"

var _ propcap.Reader = (*Reader)(nil)

// Reader is a mock implementation of propcap.Reader.
type Reader struct {
	NameFn func() string
	ReadFn func(snap *propcap.PageSnapshot) (*propcap.Property, error)
}

func (r *Reader) Name() string {
	if r.NameFn == nil {
		return "mock"
	}
	return r.NameFn()
}

func (r *Reader) Read(snap *propcap.PageSnapshot) (*propcap.Property, error) {
	return r.ReadFn(snap)
}
