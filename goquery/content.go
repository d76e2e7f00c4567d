package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/propcap"
)

// photoLimit caps how many distinct image references are harvested per page.
const photoLimit = 50

var inlinePhotoRE = regexp.MustCompile(`large_url\s*:\s*'([^']+)'`)

// Ensure ContentReader implements propcap.Reader at compile time.
var _ propcap.Reader = (*ContentReader)(nil)

// ContentReader extracts the rendered-content view: amenity lists, room
// cards, review score/count, supplementary fixed-position fields, and photo
// references, using the layout profile's selectors as anchors. Anchors that
// are missing on the page simply leave their fields unknown.
type ContentReader struct {
	profile Profile
}

// NewContentReader creates a ContentReader for the given layout profile.
func NewContentReader(profile Profile) *ContentReader {
	return &ContentReader{profile: profile}
}

// Name identifies the reader.
func (r *ContentReader) Name() string { return "content" }

// Read returns everything the profile's anchors locate on the page, or nil
// when none of them match.
func (r *ContentReader) Read(snap *propcap.PageSnapshot) (*propcap.Property, error) {
	doc, err := parseDoc(snap)
	if err != nil {
		return nil, err
	}

	frag := &propcap.Property{}
	found := false

	if name := firstText(doc, r.profile.NameSelector); name != nil {
		frag.Name = name
		found = true
	}

	// Address text on these layouts is a single rendered line; it fills the
	// street field and leaves structured parts for higher-priority sources.
	if addr := firstText(doc, r.profile.AddressSelector); addr != nil {
		frag.Location.Address.Street = addr
		found = true
	}

	if amenities := r.amenities(doc); len(amenities) > 0 {
		frag.Amenities.General = amenities
		found = true
	}

	if rooms := r.rooms(doc); len(rooms) > 0 {
		frag.Rooms.RoomTypes = rooms
		found = true
	}

	if score := firstText(doc, r.profile.ReviewScoreSelector); score != nil {
		frag.Reviews.OverallRating = propcap.ParseNumber(*score)
	}
	if count := firstText(doc, r.profile.ReviewCountSelector); count != nil {
		frag.Reviews.TotalReviews = propcap.ParseCount(*count)
	}
	if frag.Reviews.OverallRating != nil || frag.Reviews.TotalReviews != nil {
		found = true
	}

	if langs := firstText(doc, r.profile.LanguagesSelector); langs != nil {
		frag.Languages = propcap.TokenizeList(*langs, 0)
		found = true
	}
	if parking := firstText(doc, r.profile.ParkingSelector); parking != nil {
		frag.Transportation.Parking = parking
		found = true
	}
	if business := firstText(doc, r.profile.BusinessFacilitiesSelector); business != nil {
		frag.BusinessFacilities = business
		found = true
	}

	if photos := r.photos(doc); len(photos) > 0 {
		frag.Photos = photos
		found = true
	}

	if !found {
		return nil, nil
	}
	return frag, nil
}

func (r *ContentReader) amenities(doc *goquery.Document) []string {
	if r.profile.AmenitySelector == "" {
		return nil
	}
	var items []string
	doc.Find(r.profile.AmenitySelector).Each(func(_ int, sel *goquery.Selection) {
		items = append(items, sel.Text())
	})
	return uniqueStrings(items, 0)
}

func (r *ContentReader) rooms(doc *goquery.Document) []propcap.RoomType {
	if r.profile.RoomCardSelector == "" {
		return nil
	}
	var out []propcap.RoomType
	doc.Find(r.profile.RoomCardSelector).Each(func(_ int, card *goquery.Selection) {
		out = append(out, r.roomFromCard(card))
	})
	return out
}

func (r *ContentReader) roomFromCard(card *goquery.Selection) propcap.RoomType {
	room := propcap.RoomType{
		Name: cardText(card, r.profile.RoomNameSelector),
		Size: cardText(card, r.profile.RoomSizeSelector),
	}

	if occ := cardText(card, r.profile.RoomOccupancySelector); occ != nil {
		room.MaxOccupancy = propcap.ParseCount(*occ)
	}

	if r.profile.RoomBedSelector != "" {
		var beds []string
		card.Find(r.profile.RoomBedSelector).Each(func(_ int, sel *goquery.Selection) {
			if bed := propcap.TrimOrNil(sel.Text()); bed != nil {
				beds = append(beds, *bed)
			}
		})
		if beds = uniqueStrings(beds, 0); len(beds) > 0 {
			joined := strings.Join(beds, ", ")
			room.BedConfiguration = &joined
		}
	}

	if price := cardText(card, r.profile.RoomPriceSelector); price != nil {
		if rate := propcap.ParseNumber(*price); rate != nil {
			room.Pricing = &propcap.RoomPricing{BaseRate: rate}
		}
	}

	var amenities []string
	card.Find("li").Each(func(_ int, sel *goquery.Selection) {
		amenities = append(amenities, sel.Text())
	})
	room.Amenities = uniqueStrings(amenities, 0)

	return room
}

// photos harvests distinct image references from the profile's gallery
// selector and, for layouts that embed the gallery in inline scripts, from
// large_url markers.
func (r *ContentReader) photos(doc *goquery.Document) []propcap.Photo {
	var srcs []string

	if r.profile.PhotoSelector != "" {
		doc.Find(r.profile.PhotoSelector).Each(func(_ int, sel *goquery.Selection) {
			src, ok := sel.Attr("src")
			if !ok || src == "" {
				src, _ = sel.Attr("data-src")
			}
			if src == "" {
				if srcset, ok := sel.Attr("srcset"); ok {
					src, _, _ = strings.Cut(strings.TrimSpace(srcset), " ")
				}
			}
			if src != "" {
				srcs = append(srcs, src)
			}
		})
	}

	if r.profile.InlinePhotoScripts {
		doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
			for _, m := range inlinePhotoRE.FindAllStringSubmatch(sel.Text(), -1) {
				srcs = append(srcs, m[1])
			}
		})
	}

	srcs = uniqueStrings(srcs, photoLimit)
	if len(srcs) == 0 {
		return nil
	}
	photos := make([]propcap.Photo, len(srcs))
	for i, src := range srcs {
		photos[i] = propcap.Photo{Src: src}
	}
	return photos
}

func cardText(card *goquery.Selection, selector string) *string {
	if selector == "" {
		return nil
	}
	sel := card.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return propcap.TrimOrNil(sel.Text())
}
