package goquery

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/propcap"
)

// Ensure JSONLDReader implements propcap.Reader at compile time.
var _ propcap.Reader = (*JSONLDReader)(nil)

// JSONLDReader extracts the structured-metadata view of the property: the
// first embedded JSON-LD block describing a Hotel or LodgingBusiness entity.
// This is the highest-confidence source when present. Blocks that fail to
// parse are skipped individually.
type JSONLDReader struct{}

// NewJSONLDReader creates a new JSONLDReader.
func NewJSONLDReader() *JSONLDReader {
	return &JSONLDReader{}
}

// Name identifies the reader.
func (r *JSONLDReader) Name() string { return "jsonld" }

// Read returns the fields found in the lodging JSON-LD block, or nil if the
// page embeds none.
func (r *JSONLDReader) Read(snap *propcap.PageSnapshot) (*propcap.Property, error) {
	doc, err := parseDoc(snap)
	if err != nil {
		return nil, err
	}

	node := findLodgingNode(doc)
	if node == nil {
		return nil, nil
	}

	frag := &propcap.Property{}
	frag.Name = ldString(node, "name")
	frag.Description = ldString(node, "description")
	frag.Brand = brandName(node["brand"])

	if tel := ldString(node, "telephone"); tel != nil {
		frag.Contact.Phone.Primary = propcap.NormalizePhone(*tel)
	}
	frag.Contact.Email.General = ldString(node, "email")

	if addr, ok := node["address"].(map[string]any); ok {
		frag.Location.Address.Street = ldString(addr, "streetAddress")
		frag.Location.Address.City = ldString(addr, "addressLocality")
		frag.Location.Address.State = ldString(addr, "addressRegion")
		frag.Location.Address.PostalCode = ldString(addr, "postalCode")
		frag.Location.Address.Country = countryName(addr["addressCountry"])
	}

	frag.Location.Coordinates = ldCoordinates(node)

	if agg, ok := node["aggregateRating"].(map[string]any); ok {
		frag.Reviews.OverallRating = ldNumber(agg, "ratingValue")
		frag.Reviews.TotalReviews = ldCount(agg, "reviewCount")
	}

	frag.Policies.CheckIn.Time = firstLDString(node, "checkinTime", "checkInTime")
	frag.Policies.CheckOut.Time = firstLDString(node, "checkoutTime", "checkOutTime")

	if pets, ok := node["petsAllowed"].(bool); ok {
		frag.Policies.PetPolicy.PetsAllowed = &pets
	}

	return frag, nil
}

// findLodgingNode locates the first JSON-LD node with a lodging type
// discriminator, tolerating top-level arrays, @graph containers, and
// multi-type nodes.
func findLodgingNode(doc *goquery.Document) map[string]any {
	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true // malformed block, keep looking
		}
		found = lodgingNodeIn(data)
		return found == nil
	})
	return found
}

func lodgingNodeIn(data any) map[string]any {
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			if node := lodgingNodeIn(item); node != nil {
				return node
			}
		}
	case map[string]any:
		if isLodgingType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return lodgingNodeIn(graph)
		}
	}
	return nil
}

func isLodgingType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Hotel" || v == "LodgingBusiness"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && (s == "Hotel" || s == "LodgingBusiness") {
				return true
			}
		}
	}
	return false
}

// ldCoordinates reads geo latitude/longitude, falling back to a hasMap link.
// The pair is returned only when both components are finite.
func ldCoordinates(node map[string]any) propcap.Coordinates {
	if geo, ok := node["geo"].(map[string]any); ok {
		lat := ldNumber(geo, "latitude")
		lng := ldNumber(geo, "longitude")
		if lat != nil && lng != nil {
			return propcap.Coordinates{Latitude: lat, Longitude: lng}
		}
	}
	if href, ok := node["hasMap"].(string); ok {
		if c := propcap.ParseCoordinatesFromLink(href); c != nil {
			return *c
		}
	}
	return propcap.Coordinates{}
}

func brandName(v any) *string {
	switch b := v.(type) {
	case string:
		return propcap.TrimOrNil(b)
	case map[string]any:
		return ldString(b, "name")
	}
	return nil
}

// countryName handles both the string form and the {"name": ...} object form
// of addressCountry.
func countryName(v any) *string {
	switch c := v.(type) {
	case string:
		return propcap.TrimOrNil(c)
	case map[string]any:
		return ldString(c, "name")
	}
	return nil
}

func ldString(m map[string]any, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return propcap.TrimOrNil(s)
}

func firstLDString(m map[string]any, keys ...string) *string {
	for _, key := range keys {
		if s := ldString(m, key); s != nil {
			return s
		}
	}
	return nil
}

// ldNumber accepts JSON numbers and numeric strings ("8.4" appears both ways
// in the wild).
func ldNumber(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	case string:
		return propcap.ParseNumber(v)
	case json.Number:
		return propcap.ParseNumber(v.String())
	}
	return nil
}

func ldCount(m map[string]any, key string) *int {
	n := ldNumber(m, key)
	if n == nil || *n < 0 || *n != math.Trunc(*n) {
		return nil
	}
	c := int(*n)
	return &c
}

// coerceID renders a JSON identifier value (string or number) as a string.
func coerceID(v any) *string {
	switch id := v.(type) {
	case string:
		return propcap.TrimOrNil(id)
	case float64:
		return propcap.TrimOrNil(strconv.FormatFloat(id, 'f', -1, 64))
	case json.Number:
		return propcap.TrimOrNil(id.String())
	case int:
		return propcap.TrimOrNil(fmt.Sprintf("%d", id))
	}
	return nil
}
