package main

import (
	"github.com/fwojciec/propcap"
	"github.com/fwojciec/propcap/goquery"
	"github.com/fwojciec/propcap/trafilatura"
)

// Ensure ProfileCapturer implements propcap.Capturer.
var _ propcap.Capturer = (*ProfileCapturer)(nil)

// ProfileCapturer resolves the vendor layout profile for each page and runs
// the merge engine with the source readers in priority order: structured data
// islands first, then page metadata, then scraped markup, then free-text
// policy extraction, then last-ditch identifier recovery.
type ProfileCapturer struct {
	registry *goquery.Registry
	conv     propcap.Converter
	timezone string
}

// NewProfileCapturer creates a new ProfileCapturer.
func NewProfileCapturer(registry *goquery.Registry, conv propcap.Converter, timezone string) *ProfileCapturer {
	return &ProfileCapturer{registry: registry, conv: conv, timezone: timezone}
}

// Capture runs one capture invocation against the snapshot.
func (c *ProfileCapturer) Capture(snap *propcap.PageSnapshot) (*propcap.Capture, error) {
	profile := c.registry.ProfileFor(snap)

	readers := []propcap.Reader{
		goquery.NewJSONLDReader(),
		goquery.NewStateReader(),
		goquery.NewMetaReader(profile),
		goquery.NewContactReader(),
		goquery.NewContentReader(profile),
		trafilatura.NewPolicyReader(),
		goquery.NewFallbackIDReader(),
	}

	engine := propcap.NewEngine(readers,
		propcap.WithConverter(c.conv),
		propcap.WithCaptureOptions(
			propcap.WithDataSource(profile.DataSource),
			propcap.WithTimezone(c.timezone),
		),
	)
	return engine.Capture(snap)
}
