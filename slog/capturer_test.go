package slog_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/propcap"
	"github.com/fwojciec/propcap/mock"
	propslog "github.com/fwojciec/propcap/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCapturer_Capture(t *testing.T) {
	t.Parallel()

	t.Run("logs capture with property name", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Capturer{
			CaptureFn: func(snap *propcap.PageSnapshot) (*propcap.Capture, error) {
				capture := propcap.NewCapture(snap.URL, time.Now())
				name := "Hotel Aurora"
				capture.Property.Name = &name
				return capture, nil
			},
		}

		capturer := propslog.NewLoggingCapturer(inner, logger)
		capture, err := capturer.Capture(&propcap.PageSnapshot{
			URL:  "https://www.booking.com/hotel/pt/aurora.html",
			HTML: "<html></html>",
		})

		require.NoError(t, err)
		require.NotNil(t, capture)
		output := buf.String()
		assert.Contains(t, output, "capture")
		assert.Contains(t, output, "url=https://www.booking.com/hotel/pt/aurora.html")
		assert.Contains(t, output, `name="Hotel Aurora"`)
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs unknown name when record has none", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Capturer{
			CaptureFn: func(snap *propcap.PageSnapshot) (*propcap.Capture, error) {
				return propcap.NewCapture(snap.URL, time.Now()), nil
			},
		}

		capturer := propslog.NewLoggingCapturer(inner, logger)
		_, err := capturer.Capture(&propcap.PageSnapshot{URL: "https://example.com/hotel"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "name=(unknown)")
	})
}
