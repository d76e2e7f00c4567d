package mock

import (
	"context"

	"github.com/fwojciec/propcap"
)

var _ propcap.CaptureStore = (*CaptureStore)(nil)

// CaptureStore is a mock implementation of propcap.CaptureStore.
type CaptureStore struct {
	SaveCaptureFn  func(ctx context.Context, capture *propcap.Capture) (*propcap.SavedCapture, error)
	FindCapturesFn func(ctx context.Context, filter propcap.CaptureFilter) ([]*propcap.SavedCapture, error)
}

func (s *CaptureStore) SaveCapture(ctx context.Context, capture *propcap.Capture) (*propcap.SavedCapture, error) {
	return s.SaveCaptureFn(ctx, capture)
}

func (s *CaptureStore) FindCaptures(ctx context.Context, filter propcap.CaptureFilter) ([]*propcap.SavedCapture, error) {
	return s.FindCapturesFn(ctx, filter)
}
