package goquery

import (
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/propcap"
)

// Inline-script state markers some vendors render instead of a structured
// data island.
var (
	inlineIDRE   = regexp.MustCompile(`b_hotel_id\s*:\s*'([^']+)'`)
	inlineNameRE = regexp.MustCompile(`b_hotel_name\s*:\s*'([^']+)'`)
)

// idQueryParams are the query parameter names an identifier may hide under.
var idQueryParams = []string{"hotelId", "hotel_id", "propertyId"}

// Ensure FallbackIDReader implements propcap.Reader at compile time.
var _ propcap.Reader = (*FallbackIDReader)(nil)

// FallbackIDReader is the last-resort identifier source: the page address's
// query parameters, a small set of marker attributes, and inline-script state
// markers. It runs last so an identifier from a richer source always wins.
type FallbackIDReader struct{}

// NewFallbackIDReader creates a new FallbackIDReader.
func NewFallbackIDReader() *FallbackIDReader {
	return &FallbackIDReader{}
}

// Name identifies the reader.
func (r *FallbackIDReader) Name() string { return "fallback-id" }

// Read returns an identifier (and a name, when an inline marker carries one)
// or nil when no marker is present.
func (r *FallbackIDReader) Read(snap *propcap.PageSnapshot) (*propcap.Property, error) {
	doc, err := parseDoc(snap)
	if err != nil {
		return nil, err
	}

	frag := &propcap.Property{}
	frag.ID = idFromQuery(snap.URL)
	if frag.ID == nil {
		frag.ID = idFromAttributes(doc)
	}

	inlineID, inlineName := inlineMarkers(doc)
	if frag.ID == nil {
		frag.ID = inlineID
	}
	frag.Name = inlineName

	if frag.ID == nil && frag.Name == nil {
		return nil, nil
	}
	return frag, nil
}

func idFromQuery(rawURL string) *string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	q := u.Query()
	for _, param := range idQueryParams {
		if id := propcap.TrimOrNil(q.Get(param)); id != nil {
			return id
		}
	}
	return nil
}

func idFromAttributes(doc *goquery.Document) *string {
	sel := doc.Find("[data-hotel-id], [data-hotelid]").First()
	if sel.Length() == 0 {
		return nil
	}
	if v, ok := sel.Attr("data-hotel-id"); ok {
		return propcap.TrimOrNil(v)
	}
	if v, ok := sel.Attr("data-hotelid"); ok {
		return propcap.TrimOrNil(v)
	}
	return nil
}

func inlineMarkers(doc *goquery.Document) (id, name *string) {
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if id == nil {
			if m := inlineIDRE.FindStringSubmatch(text); m != nil {
				id = propcap.TrimOrNil(m[1])
			}
		}
		if name == nil {
			if m := inlineNameRE.FindStringSubmatch(text); m != nil {
				name = propcap.TrimOrNil(m[1])
			}
		}
		return id == nil || name == nil
	})
	return id, name
}
