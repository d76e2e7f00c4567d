// Package trafilatura provides the free-text policy reader. It extracts the
// page's visible text with go-trafilatura and scans it once for
// keyword-anchored policy patterns: check-in/check-out times, cancellation
// and no-show phrases, and the pet policy. These heuristics are narrow,
// best-effort fallbacks and run at the lowest priority.
package trafilatura

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/propcap"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure PolicyReader implements propcap.Reader at compile time.
var _ propcap.Reader = (*PolicyReader)(nil)

// Fixed policy phrase patterns, matched case-insensitively against the
// page's visible text.
var (
	freeCancellationRE = regexp.MustCompile(`(?i)free cancellation`)
	nonRefundableRE    = regexp.MustCompile(`(?i)non[-\s]?refundable`)
	noShowRE           = regexp.MustCompile(`(?i)no[-\s]?show`)
	petsAllowedRE      = regexp.MustCompile(`(?i)pets?\s+(allowed|friendly)`)
	petsDeniedRE       = regexp.MustCompile(`(?i)no pets|pets?\s+not allowed`)
)

// PolicyReader scans the page's visible text for policy patterns.
type PolicyReader struct{}

// NewPolicyReader creates a new PolicyReader.
func NewPolicyReader() *PolicyReader {
	return &PolicyReader{}
}

// Name identifies the reader.
func (r *PolicyReader) Name() string { return "policy-text" }

// Read returns the policy fields found in the page text, or nil when no
// pattern matches.
func (r *PolicyReader) Read(snap *propcap.PageSnapshot) (*propcap.Property, error) {
	if snap == nil {
		return nil, propcap.Errorf(propcap.EINVALID, "page snapshot required")
	}

	text := visibleText(snap.HTML)
	if text == "" {
		return nil, nil
	}

	frag := &propcap.Property{}
	found := false

	if t := propcap.MatchTimeOfDay(text, `check[-\s]?in`); t != nil {
		frag.Policies.CheckIn.Time = t
		found = true
	}
	if t := propcap.MatchTimeOfDay(text, `check[-\s]?out`); t != nil {
		frag.Policies.CheckOut.Time = t
		found = true
	}

	if freeCancellationRE.MatchString(text) {
		note := "Free cancellation"
		frag.Policies.Cancellation.FreeCancellation = &note
		found = true
	}
	if nonRefundableRE.MatchString(text) {
		note := "Non-refundable"
		frag.Policies.Cancellation.RefundPolicy = &note
		found = true
	}
	if noShowRE.MatchString(text) {
		note := "No-show charges apply"
		frag.Policies.Cancellation.NoShowPolicy = &note
		found = true
	}

	if pets := propcap.MatchTriState(text, petsAllowedRE, petsDeniedRE); pets != nil {
		frag.Policies.PetPolicy.PetsAllowed = pets
		found = true
	}

	if !found {
		return nil, nil
	}
	return frag, nil
}

// visibleText extracts the page's readable text. Trafilatura handles
// boilerplate and script removal; when it fails or finds nothing the raw
// body text (scripts and styles removed) is used instead so that policy
// sections outside the main content block are still scanned.
func visibleText(html string) string {
	var parts []string

	result, err := trafilatura.Extract(strings.NewReader(html), trafilatura.Options{
		EnableFallback: true,
	})
	if err == nil && result != nil {
		parts = append(parts, result.ContentText)
	}

	if body := bodyText(html); body != "" {
		parts = append(parts, body)
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func bodyText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(doc.Find("body").Text())
}
