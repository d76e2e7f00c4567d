// Package goquery provides DOM-based source readers for the capture engine.
// Each reader extracts a sparse partial record from one origin type on a
// rendered travel-listing page. Vendor-specific layout knowledge is carried
// by a Profile, auto-detected from the page and falling back to a generic
// profile for unknown layouts.
package goquery

import "regexp"

// Vendor identifies a travel-listing site whose layout has a tailored profile.
type Vendor string

// Known vendors.
const (
	VendorUnknown Vendor = ""
	VendorBooking Vendor = "booking"
	VendorAgoda   Vendor = "agoda"
)

// Profile describes how one vendor's layout exposes rendered content: the
// selectors anchoring each field, the vendor suffix to strip from page
// titles, and the origin-system tag carried in capture metadata.
type Profile struct {
	Vendor      Vendor
	DataSource  string
	TitleSuffix *regexp.Regexp

	NameSelector    string
	AddressSelector string
	AmenitySelector string

	RoomCardSelector      string
	RoomNameSelector      string
	RoomSizeSelector      string
	RoomOccupancySelector string
	RoomBedSelector       string
	RoomPriceSelector     string

	ReviewScoreSelector string
	ReviewCountSelector string

	LanguagesSelector          string
	ParkingSelector            string
	BusinessFacilitiesSelector string

	PhotoSelector string

	// InlinePhotoScripts harvests image URLs from inline script blobs in
	// addition to PhotoSelector (Booking embeds its gallery this way).
	InlinePhotoScripts bool
}

// BookingProfile returns the layout profile for Booking.com property pages.
func BookingProfile() Profile {
	return Profile{
		Vendor:      VendorBooking,
		DataSource:  "Booking",
		TitleSuffix: regexp.MustCompile(`(?i)\s*-\s*Booking\.com.*$`),

		NameSelector:    `h2[data-testid="title"], h2[data-capla-component-boundary]`,
		AddressSelector: `[data-node_tt_id="location_score_tooltip"], [data-testid="address"]`,
		AmenitySelector: `[data-testid="property-most-popular-facilities-wrapper"] li, [data-testid="amenities-container"] li`,

		RoomCardSelector:      `[data-testid="room-info"]`,
		RoomNameSelector:      `[data-testid="room-name"], h3`,
		RoomSizeSelector:      `[data-testid="room-size"]`,
		RoomOccupancySelector: `[data-testid="occupancy"]`,
		RoomBedSelector:       `[data-testid="bed-type"]`,
		RoomPriceSelector:     `[data-testid="price-and-discounted-price"], [data-testid="price-for-x-nights"]`,

		ReviewScoreSelector: `[data-testid="review-score-component"] [aria-label], [data-testid="review-score-component"] div, [data-testid="review-score-right-component"]`,
		ReviewCountSelector: `[data-testid="review-score-component"] span, [data-testid="review-subtitle"]`,

		PhotoSelector:      `a[data-testid="gallery-image"] img, img[data-testid="image"]`,
		InlinePhotoScripts: true,
	}
}

// AgodaProfile returns the layout profile for Agoda property pages.
func AgodaProfile() Profile {
	return Profile{
		Vendor:      VendorAgoda,
		DataSource:  "Agoda",
		TitleSuffix: regexp.MustCompile(`(?i)\s*[-|]\s*Agoda\s*$`),

		NameSelector:    `h1[data-selenium="hotel-header-name"]`,
		AddressSelector: `span[data-selenium="hotel-address-map"], [data-selenium="address-text"]`,
		AmenitySelector: `ul[data-selenium="facility-list"] li`,

		RoomCardSelector:      `[data-selenium="roomCard"]`,
		RoomNameSelector:      `[data-selenium="room-name"]`,
		RoomSizeSelector:      `[data-selenium="room-size"]`,
		RoomOccupancySelector: `[data-selenium="occupancy"]`,
		RoomBedSelector:       `[data-selenium="bed-config"], li`,
		RoomPriceSelector:     `[data-selenium="final-price"], [data-selenium="price"]`,

		ReviewScoreSelector: `[data-selenium="review-score"]`,
		ReviewCountSelector: `[data-selenium="review-count"]`,

		LanguagesSelector:          `[data-element-name="property-feature-languages"], [data-selenium="languages-spoken"]`,
		ParkingSelector:            `[data-element-name="property-feature-parking"], [data-selenium="parking-info"]`,
		BusinessFacilitiesSelector: `[data-element-name="property-feature-business"], [data-selenium="business-facilities"]`,

		PhotoSelector: `img[data-selenium*="gallery"], img[src*="agoda"]`,
	}
}

// GenericProfile returns the best-effort fallback profile for unknown
// layouts. Anchors are deliberately broad; readers that find nothing simply
// report the source as absent.
func GenericProfile() Profile {
	return Profile{
		Vendor: VendorUnknown,

		// Unknown sites still tend to end titles with "- SiteName".
		TitleSuffix: regexp.MustCompile(`\s+[-|–]\s+[^-|–]*$`),

		NameSelector:    `h1`,
		AddressSelector: `[itemprop="address"], address`,
		AmenitySelector: `[class*="amenit"] li, [class*="facilit"] li`,

		RoomCardSelector:      `[class*="room-card"], [class*="roomCard"]`,
		RoomNameSelector:      `h3, [class*="room-name"]`,
		RoomSizeSelector:      `[class*="room-size"], [class*="size"]`,
		RoomOccupancySelector: `[class*="occupancy"]`,
		RoomBedSelector:       `[class*="bed"]`,
		RoomPriceSelector:     `[class*="price"]`,

		ReviewScoreSelector: `[itemprop="ratingValue"], [class*="review-score"]`,
		ReviewCountSelector: `[itemprop="reviewCount"], [class*="review-count"]`,

		PhotoSelector: `[class*="gallery"] img`,
	}
}
