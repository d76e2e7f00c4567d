package propcap

import "time"

// SchemaVersion is the literal version tag carried by every capture for
// forward compatibility.
const SchemaVersion = "1.0"

// Capture is the envelope returned by one capture invocation. The record is
// created fresh per invocation and never reused.
type Capture struct {
	ScrapedAt string    `json:"scrapedAt"`
	Source    string    `json:"source"`
	Property  *Property `json:"property"`
}

// Property is the canonical lodging property record. The shape is total:
// every field key is always present and unknown values are explicit nulls,
// never missing keys. Scalar fields use pointers so that unknown serializes
// as JSON null.
type Property struct {
	ID               *string `json:"id"`
	Name             *string `json:"name"`
	Brand            *string `json:"brand"`
	Category         *string `json:"category"`
	Description      *string `json:"description"`
	ShortDescription *string `json:"shortDescription"`
	Status           *string `json:"status"`
	IsActive         *bool   `json:"isActive"`
	IsVerified       *bool   `json:"isVerified"`
	VerificationDate *string `json:"verificationDate"`

	Contact   Contact   `json:"contact"`
	Location  Location  `json:"location"`
	Amenities Amenities `json:"amenities"`
	Rooms     Rooms     `json:"rooms"`
	Policies  Policies  `json:"policies"`
	Reviews   Reviews   `json:"reviews"`

	Photos []Photo `json:"photos"`

	Awards              []string       `json:"awards"`
	Sustainability      *string        `json:"sustainability"`
	Languages           []string       `json:"languages"`
	PaymentMethods      []string       `json:"paymentMethods"`
	Accessibility       *string        `json:"accessibility"`
	NearbyAttractions   []string       `json:"nearbyAttractions"`
	Transportation      Transportation `json:"transportation"`
	BusinessFacilities  *string        `json:"businessFacilities"`
	SeasonalInformation *string        `json:"seasonalInformation"`

	LastUpdated string  `json:"lastUpdated"`
	Version     string  `json:"version"`
	DataSource  *string `json:"dataSource"`
	Language    *string `json:"language"`
	Timezone    *string `json:"timezone"`
}

// Contact groups the property's contact channels.
type Contact struct {
	Phone       Phone       `json:"phone"`
	Email       Email       `json:"email"`
	Website     *string     `json:"website"`
	SocialMedia SocialMedia `json:"socialMedia"`
}

// Phone holds canonicalized phone numbers by role.
type Phone struct {
	Primary      *string `json:"primary"`
	Secondary    *string `json:"secondary"`
	Reservations *string `json:"reservations"`
	Concierge    *string `json:"concierge"`
}

// Email holds email addresses by role.
type Email struct {
	General      *string `json:"general"`
	Reservations *string `json:"reservations"`
	Concierge    *string `json:"concierge"`
	GroupSales   *string `json:"groupSales"`
}

// SocialMedia holds the first discovered profile link per platform.
type SocialMedia struct {
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	Twitter   *string `json:"twitter"`
	LinkedIn  *string `json:"linkedin"`
}

// Location groups address, coordinates, and area descriptors.
type Location struct {
	Address         Address     `json:"address"`
	Coordinates     Coordinates `json:"coordinates"`
	Neighborhood    *string     `json:"neighborhood"`
	District        *string     `json:"district"`
	Landmarks       []string    `json:"landmarks"`
	AirportDistance *string     `json:"airportDistance"`
}

// Address is a structured postal address.
type Address struct {
	Street      *string `json:"street"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	PostalCode  *string `json:"postalCode"`
	Country     *string `json:"country"`
	CountryCode *string `json:"countryCode"`
}

// Coordinates is a geographic position. Latitude and longitude are either
// both finite numbers or both null.
type Coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
}

// Amenities holds grouped amenity label lists.
type Amenities struct {
	General       []string `json:"general"`
	Dining        []string `json:"dining"`
	Recreation    []string `json:"recreation"`
	Business      []string `json:"business"`
	Accessibility []string `json:"accessibility"`
}

// Rooms holds the room inventory.
type Rooms struct {
	TotalRooms *int       `json:"totalRooms"`
	RoomTypes  []RoomType `json:"roomTypes"`
}

// RoomType describes one bookable room category.
type RoomType struct {
	ID               *string      `json:"id"`
	Name             *string      `json:"name"`
	Description      *string      `json:"description"`
	Size             *string      `json:"size"`
	MaxOccupancy     *int         `json:"maxOccupancy"`
	BedConfiguration *string      `json:"bedConfiguration"`
	Amenities        []string     `json:"amenities"`
	Pricing          *RoomPricing `json:"pricing"`
}

// RoomPricing holds a room's rate information.
type RoomPricing struct {
	BaseRate    *float64 `json:"baseRate"`
	Currency    *string  `json:"currency"`
	TaxIncluded *bool    `json:"taxIncluded"`
}

// IsSubstantive reports whether the room carries at least one meaningful
// field. Fully-empty room entries are dropped during merge.
func (r RoomType) IsSubstantive() bool {
	return r.Name != nil || r.Size != nil || r.MaxOccupancy != nil ||
		r.BedConfiguration != nil || r.Pricing != nil
}

// Policies groups stay policies.
type Policies struct {
	CheckIn         CheckInPolicy      `json:"checkIn"`
	CheckOut        CheckOutPolicy     `json:"checkOut"`
	Cancellation    CancellationPolicy `json:"cancellation"`
	PetPolicy       PetPolicy          `json:"petPolicy"`
	AgeRestrictions AgeRestrictions    `json:"ageRestrictions"`
	SmokingPolicy   *string            `json:"smokingPolicy"`
}

// CheckInPolicy holds check-in times.
type CheckInPolicy struct {
	Time         *string `json:"time"`
	EarlyCheckIn *string `json:"earlyCheckIn"`
	LateCheckIn  *string `json:"lateCheckIn"`
}

// CheckOutPolicy holds check-out times.
type CheckOutPolicy struct {
	Time         *string `json:"time"`
	LateCheckOut *string `json:"lateCheckOut"`
}

// CancellationPolicy holds cancellation-related notes.
type CancellationPolicy struct {
	FreeCancellation *string `json:"freeCancellation"`
	RefundPolicy     *string `json:"refundPolicy"`
	NoShowPolicy     *string `json:"noShowPolicy"`
}

// PetPolicy holds the pet policy. PetsAllowed is tri-state: true, false, or
// unknown (null).
type PetPolicy struct {
	PetsAllowed    *bool    `json:"petsAllowed"`
	PetFee         *float64 `json:"petFee"`
	PetFeeType     *string  `json:"petFeeType"`
	PetWeightLimit *string  `json:"petWeightLimit"`
	PetTypes       []string `json:"petTypes"`
}

// AgeRestrictions holds age-related rules.
type AgeRestrictions struct {
	MinimumAge     *int    `json:"minimumAge"`
	ChildrenPolicy *string `json:"childrenPolicy"`
}

// Reviews holds aggregate review data.
type Reviews struct {
	OverallRating   *float64           `json:"overallRating"`
	TotalReviews    *int               `json:"totalReviews"`
	RatingBreakdown map[string]float64 `json:"ratingBreakdown"`
	RecentReviews   []Review           `json:"recentReviews"`
}

// Review is one guest review.
type Review struct {
	Author *string  `json:"author"`
	Rating *float64 `json:"rating"`
	Text   *string  `json:"text"`
	Date   *string  `json:"date"`
}

// Photo is a harvested image reference.
type Photo struct {
	Src string `json:"src"`
}

// Transportation holds transportation notes.
type Transportation struct {
	Parking *string `json:"parking"`
}

// CaptureOption configures capture metadata on the skeleton.
type CaptureOption func(*Property)

// WithDataSource sets the origin-system tag (e.g. "Booking", "Agoda").
func WithDataSource(tag string) CaptureOption {
	return func(p *Property) { p.DataSource = TrimOrNil(tag) }
}

// WithLanguage sets the page locale.
func WithLanguage(lang string) CaptureOption {
	return func(p *Property) { p.Language = TrimOrNil(lang) }
}

// WithTimezone sets the capture environment's timezone.
func WithTimezone(tz string) CaptureOption {
	return func(p *Property) { p.Timezone = TrimOrNil(tz) }
}

// NewCapture builds the canonical skeleton: a capture whose property record
// has every recognized field present and unknown, plus populated capture
// metadata. Source readers never add or remove keys, they only fill values.
// NewCapture never fails; metadata that cannot be determined stays null.
func NewCapture(source string, now time.Time, opts ...CaptureOption) *Capture {
	nowISO := now.UTC().Format(time.RFC3339)
	p := &Property{
		Contact: Contact{
			Website: TrimOrNil(source),
		},
		LastUpdated: nowISO,
		Version:     SchemaVersion,
	}
	for _, opt := range opts {
		opt(p)
	}
	return &Capture{
		ScrapedAt: nowISO,
		Source:    source,
		Property:  p,
	}
}
