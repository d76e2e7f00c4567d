package mock

import (
	"context"

	"github.com/fwojciec/propcap"
)

var _ propcap.CaptureWriter = (*CaptureWriter)(nil)

// CaptureWriter is a mock implementation of propcap.CaptureWriter.
type CaptureWriter struct {
	WriteCaptureFn func(ctx context.Context, capture *propcap.Capture) (string, error)
}

func (w *CaptureWriter) WriteCapture(ctx context.Context, capture *propcap.Capture) (string, error) {
	return w.WriteCaptureFn(ctx, capture)
}
