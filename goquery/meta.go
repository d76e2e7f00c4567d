package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/propcap"
)

// Ensure MetaReader implements propcap.Reader at compile time.
var _ propcap.Reader = (*MetaReader)(nil)

// MetaReader extracts the page-meta view: OpenGraph/meta tags and the
// document title as a low-confidence fallback for name and description, plus
// the document language. Vendor suffixes ("… - Booking.com") are stripped
// from title text using the layout profile.
type MetaReader struct {
	profile Profile
}

// NewMetaReader creates a MetaReader for the given layout profile.
func NewMetaReader(profile Profile) *MetaReader {
	return &MetaReader{profile: profile}
}

// Name identifies the reader.
func (r *MetaReader) Name() string { return "meta" }

// Read returns name/description/language gleaned from page meta attributes,
// or nil when none are present.
func (r *MetaReader) Read(snap *propcap.PageSnapshot) (*propcap.Property, error) {
	doc, err := parseDoc(snap)
	if err != nil {
		return nil, err
	}

	frag := &propcap.Property{}

	title := metaContent(doc, `meta[property="og:title"]`)
	if title == nil {
		title = propcap.TrimOrNil(doc.Find("title").First().Text())
	}
	if title != nil {
		frag.Name = r.stripVendorSuffix(*title)
	}

	frag.Description = metaContent(doc, `meta[property="og:description"]`)
	if frag.Description == nil {
		frag.Description = metaContent(doc, `meta[name="description"]`)
	}

	if lang, ok := doc.Find("html").Attr("lang"); ok {
		frag.Language = propcap.TrimOrNil(lang)
	}

	if frag.Name == nil && frag.Description == nil && frag.Language == nil {
		return nil, nil
	}
	return frag, nil
}

func (r *MetaReader) stripVendorSuffix(title string) *string {
	if r.profile.TitleSuffix != nil {
		title = r.profile.TitleSuffix.ReplaceAllString(title, "")
	}
	return propcap.TrimOrNil(title)
}

func metaContent(doc *goquery.Document, selector string) *string {
	content, ok := doc.Find(selector).First().Attr("content")
	if !ok {
		return nil
	}
	return propcap.TrimOrNil(content)
}
