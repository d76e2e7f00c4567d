package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/propcap"
)

// Ensure LoggingCapturer implements propcap.Capturer.
var _ propcap.Capturer = (*LoggingCapturer)(nil)

// LoggingCapturer wraps a Capturer with logging.
type LoggingCapturer struct {
	next   propcap.Capturer
	logger *slog.Logger
}

// NewLoggingCapturer creates a new LoggingCapturer.
func NewLoggingCapturer(next propcap.Capturer, logger *slog.Logger) *LoggingCapturer {
	return &LoggingCapturer{next: next, logger: logger}
}

// Capture delegates to the wrapped capturer and logs the operation.
func (c *LoggingCapturer) Capture(snap *propcap.PageSnapshot) (capture *propcap.Capture, err error) {
	defer func(begin time.Time) {
		url := "(nil)"
		if snap != nil {
			url = snap.URL
		}
		c.logger.Info("capture",
			"url", url,
			"name", captureName(capture),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Capture(snap)
}

func captureName(capture *propcap.Capture) string {
	if capture == nil || capture.Property == nil || capture.Property.Name == nil {
		return "(unknown)"
	}
	return *capture.Property.Name
}
