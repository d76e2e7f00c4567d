package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/propcap"
)

// Ensure ContactReader implements propcap.Reader at compile time.
var _ propcap.Reader = (*ContactReader)(nil)

// Social-platform hyperlink patterns. The first matching link per platform
// wins; subsequent links are ignored.
var (
	facebookRE  = regexp.MustCompile(`(?i)facebook\.com/`)
	instagramRE = regexp.MustCompile(`(?i)instagram\.com/`)
	twitterRE   = regexp.MustCompile(`(?i)(twitter|x)\.com/`)
	linkedinRE  = regexp.MustCompile(`(?i)linkedin\.com/`)
)

// ContactReader extracts the contact/social view: telephone links, mail
// links, and social-platform profile links found in hyperlink attributes.
type ContactReader struct{}

// NewContactReader creates a new ContactReader.
func NewContactReader() *ContactReader {
	return &ContactReader{}
}

// Name identifies the reader.
func (r *ContactReader) Name() string { return "contact" }

// Read returns phones, the first email, and one link per social platform, or
// nil when the page exposes none of them.
func (r *ContactReader) Read(snap *propcap.PageSnapshot) (*propcap.Property, error) {
	doc, err := parseDoc(snap)
	if err != nil {
		return nil, err
	}

	frag := &propcap.Property{}
	found := false

	phones := telephoneLinks(doc)
	if len(phones) > 0 {
		frag.Contact.Phone.Primary = &phones[0]
		found = true
	}
	if len(phones) > 1 {
		frag.Contact.Phone.Secondary = &phones[1]
	}

	if email := firstMailtoLink(doc); email != nil {
		frag.Contact.Email.General = email
		found = true
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if href == "" {
			return true
		}
		social := &frag.Contact.SocialMedia
		switch {
		case social.Facebook == nil && facebookRE.MatchString(href):
			social.Facebook = &href
		case social.Instagram == nil && instagramRE.MatchString(href):
			social.Instagram = &href
		case social.Twitter == nil && twitterRE.MatchString(href):
			social.Twitter = &href
		case social.LinkedIn == nil && linkedinRE.MatchString(href):
			social.LinkedIn = &href
		default:
			return true
		}
		found = true
		// Stop once every platform has a link.
		return social.Facebook == nil || social.Instagram == nil ||
			social.Twitter == nil || social.LinkedIn == nil
	})

	if !found {
		return nil, nil
	}
	return frag, nil
}

// telephoneLinks returns distinct canonicalized numbers from tel: links in
// document order.
func telephoneLinks(doc *goquery.Document) []string {
	var raw []string
	doc.Find(`a[href^="tel:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if p := propcap.NormalizePhone(strings.TrimPrefix(href, "tel:")); p != nil {
			raw = append(raw, *p)
		}
	})
	return uniqueStrings(raw, 2)
}

func firstMailtoLink(doc *goquery.Document) *string {
	var email *string
	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		// Drop ?subject= and friends.
		addr, _, _ = strings.Cut(addr, "?")
		email = propcap.TrimOrNil(addr)
		return email == nil
	})
	return email
}
