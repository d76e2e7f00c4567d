package propcap

import "time"

// Ensure Engine implements Capturer at compile time.
var _ Capturer = (*Engine)(nil)

// Engine is the merge engine. It builds the canonical skeleton, invokes each
// source reader in priority order, and folds the returned fragments into the
// skeleton under the per-field conflict policies:
//
//   - fill-if-absent (the default): a fragment value is written only while
//     the accumulator's value is still unknown.
//   - always-overwrite-if-present: Name and Description only. Later sources
//     are allowed to refine a guessed title, so a non-nil fragment value
//     replaces the current one regardless of prior fills.
//
// List-valued fields are taken wholesale from the first reader that supplies
// any entries; room-type collections likewise, with empty room entries
// pruned. The engine holds no cross-invocation state.
type Engine struct {
	readers     []Reader
	conv        Converter
	captureOpts []CaptureOption
	now         func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithConverter sets a Converter used to clean rich-text descriptions.
func WithConverter(c Converter) EngineOption {
	return func(e *Engine) { e.conv = c }
}

// WithCaptureOptions sets capture metadata options applied to every skeleton.
func WithCaptureOptions(opts ...CaptureOption) EngineOption {
	return func(e *Engine) { e.captureOpts = opts }
}

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine that runs the given readers in order, highest
// priority first.
func NewEngine(readers []Reader, opts ...EngineOption) *Engine {
	e := &Engine{
		readers: readers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capture runs one synchronous capture invocation. A reader that returns an
// error or nil fragment is treated as absent; an unexpected panic anywhere in
// the merge is recovered once here and reported as a single structured error,
// never propagated past the invocation boundary.
func (e *Engine) Capture(snap *PageSnapshot) (capture *Capture, err error) {
	defer func() {
		if r := recover(); r != nil {
			capture = nil
			err = Errorf(EINTERNAL, "capture failed: %v", r)
		}
	}()

	if snap == nil {
		return nil, Errorf(EINVALID, "page snapshot required")
	}

	capture = NewCapture(snap.URL, e.now(), e.captureOpts...)
	for _, r := range e.readers {
		frag, readErr := r.Read(snap)
		if readErr != nil || frag == nil {
			continue
		}
		fold(capture.Property, frag)
	}

	e.cleanDescription(capture.Property)
	return capture, nil
}

// cleanDescription runs the optional converter over a description that may
// carry embedded markup. Conversion failures leave the original text alone.
func (e *Engine) cleanDescription(p *Property) {
	if e.conv == nil || p.Description == nil {
		return
	}
	cleaned, err := e.conv.Convert(*p.Description)
	if err != nil {
		return
	}
	if t := TrimOrNil(cleaned); t != nil {
		p.Description = t
	}
}

// fill implements fill-if-absent: next is used only while cur is unknown.
func fill[T any](cur, next *T) *T {
	if cur != nil {
		return cur
	}
	return next
}

// override implements always-overwrite-if-present: a non-nil next replaces cur.
func override[T any](cur, next *T) *T {
	if next != nil {
		return next
	}
	return cur
}

// fillList takes the fragment's list only while the accumulator's list is
// entirely empty, to avoid mixing partial lists from different layouts.
func fillList[T any](cur, next []T) []T {
	if len(cur) > 0 {
		return cur
	}
	return next
}

// fold merges one reader's sparse fragment into the accumulator. The
// accumulator's key set never changes; only values are filled.
func fold(acc, frag *Property) {
	acc.ID = fill(acc.ID, frag.ID)
	acc.Name = override(acc.Name, frag.Name)
	acc.Brand = fill(acc.Brand, frag.Brand)
	acc.Category = fill(acc.Category, frag.Category)
	acc.Description = override(acc.Description, frag.Description)
	acc.ShortDescription = fill(acc.ShortDescription, frag.ShortDescription)
	acc.Status = fill(acc.Status, frag.Status)
	acc.IsActive = fill(acc.IsActive, frag.IsActive)
	acc.IsVerified = fill(acc.IsVerified, frag.IsVerified)
	acc.VerificationDate = fill(acc.VerificationDate, frag.VerificationDate)

	foldContact(&acc.Contact, &frag.Contact)
	foldLocation(&acc.Location, &frag.Location)
	foldAmenities(&acc.Amenities, &frag.Amenities)
	foldRooms(&acc.Rooms, &frag.Rooms)
	foldPolicies(&acc.Policies, &frag.Policies)
	foldReviews(&acc.Reviews, &frag.Reviews)

	acc.Photos = fillList(acc.Photos, frag.Photos)

	acc.Awards = fillList(acc.Awards, frag.Awards)
	acc.Sustainability = fill(acc.Sustainability, frag.Sustainability)
	acc.Languages = fillList(acc.Languages, frag.Languages)
	acc.PaymentMethods = fillList(acc.PaymentMethods, frag.PaymentMethods)
	acc.Accessibility = fill(acc.Accessibility, frag.Accessibility)
	acc.NearbyAttractions = fillList(acc.NearbyAttractions, frag.NearbyAttractions)
	acc.Transportation.Parking = fill(acc.Transportation.Parking, frag.Transportation.Parking)
	acc.BusinessFacilities = fill(acc.BusinessFacilities, frag.BusinessFacilities)
	acc.SeasonalInformation = fill(acc.SeasonalInformation, frag.SeasonalInformation)

	acc.DataSource = fill(acc.DataSource, frag.DataSource)
	acc.Language = fill(acc.Language, frag.Language)
	acc.Timezone = fill(acc.Timezone, frag.Timezone)
}

func foldContact(acc, frag *Contact) {
	acc.Phone.Primary = fill(acc.Phone.Primary, frag.Phone.Primary)
	acc.Phone.Secondary = fill(acc.Phone.Secondary, frag.Phone.Secondary)
	acc.Phone.Reservations = fill(acc.Phone.Reservations, frag.Phone.Reservations)
	acc.Phone.Concierge = fill(acc.Phone.Concierge, frag.Phone.Concierge)

	acc.Email.General = fill(acc.Email.General, frag.Email.General)
	acc.Email.Reservations = fill(acc.Email.Reservations, frag.Email.Reservations)
	acc.Email.Concierge = fill(acc.Email.Concierge, frag.Email.Concierge)
	acc.Email.GroupSales = fill(acc.Email.GroupSales, frag.Email.GroupSales)

	acc.Website = fill(acc.Website, frag.Website)

	acc.SocialMedia.Facebook = fill(acc.SocialMedia.Facebook, frag.SocialMedia.Facebook)
	acc.SocialMedia.Instagram = fill(acc.SocialMedia.Instagram, frag.SocialMedia.Instagram)
	acc.SocialMedia.Twitter = fill(acc.SocialMedia.Twitter, frag.SocialMedia.Twitter)
	acc.SocialMedia.LinkedIn = fill(acc.SocialMedia.LinkedIn, frag.SocialMedia.LinkedIn)
}

func foldLocation(acc, frag *Location) {
	acc.Address.Street = fill(acc.Address.Street, frag.Address.Street)
	acc.Address.City = fill(acc.Address.City, frag.Address.City)
	acc.Address.State = fill(acc.Address.State, frag.Address.State)
	acc.Address.PostalCode = fill(acc.Address.PostalCode, frag.Address.PostalCode)
	acc.Address.Country = fill(acc.Address.Country, frag.Address.Country)
	acc.Address.CountryCode = fill(acc.Address.CountryCode, frag.Address.CountryCode)

	acc.Coordinates.Latitude = fill(acc.Coordinates.Latitude, frag.Coordinates.Latitude)
	acc.Coordinates.Longitude = fill(acc.Coordinates.Longitude, frag.Coordinates.Longitude)
	acc.Coordinates.Accuracy = fill(acc.Coordinates.Accuracy, frag.Coordinates.Accuracy)

	acc.Neighborhood = fill(acc.Neighborhood, frag.Neighborhood)
	acc.District = fill(acc.District, frag.District)
	acc.Landmarks = fillList(acc.Landmarks, frag.Landmarks)
	acc.AirportDistance = fill(acc.AirportDistance, frag.AirportDistance)
}

func foldAmenities(acc, frag *Amenities) {
	acc.General = fillList(acc.General, frag.General)
	acc.Dining = fillList(acc.Dining, frag.Dining)
	acc.Recreation = fillList(acc.Recreation, frag.Recreation)
	acc.Business = fillList(acc.Business, frag.Business)
	acc.Accessibility = fillList(acc.Accessibility, frag.Accessibility)
}

// foldRooms takes the room-type collection wholesale from the first reader
// that supplies a non-empty collection; rooms are never merged across readers.
func foldRooms(acc, frag *Rooms) {
	acc.TotalRooms = fill(acc.TotalRooms, frag.TotalRooms)
	if len(acc.RoomTypes) == 0 {
		acc.RoomTypes = pruneRoomTypes(frag.RoomTypes)
	}
}

// pruneRoomTypes drops fully-empty room entries.
func pruneRoomTypes(rooms []RoomType) []RoomType {
	var out []RoomType
	for _, r := range rooms {
		if r.IsSubstantive() {
			out = append(out, r)
		}
	}
	return out
}

func foldPolicies(acc, frag *Policies) {
	acc.CheckIn.Time = fill(acc.CheckIn.Time, frag.CheckIn.Time)
	acc.CheckIn.EarlyCheckIn = fill(acc.CheckIn.EarlyCheckIn, frag.CheckIn.EarlyCheckIn)
	acc.CheckIn.LateCheckIn = fill(acc.CheckIn.LateCheckIn, frag.CheckIn.LateCheckIn)

	acc.CheckOut.Time = fill(acc.CheckOut.Time, frag.CheckOut.Time)
	acc.CheckOut.LateCheckOut = fill(acc.CheckOut.LateCheckOut, frag.CheckOut.LateCheckOut)

	acc.Cancellation.FreeCancellation = fill(acc.Cancellation.FreeCancellation, frag.Cancellation.FreeCancellation)
	acc.Cancellation.RefundPolicy = fill(acc.Cancellation.RefundPolicy, frag.Cancellation.RefundPolicy)
	acc.Cancellation.NoShowPolicy = fill(acc.Cancellation.NoShowPolicy, frag.Cancellation.NoShowPolicy)

	acc.PetPolicy.PetsAllowed = fill(acc.PetPolicy.PetsAllowed, frag.PetPolicy.PetsAllowed)
	acc.PetPolicy.PetFee = fill(acc.PetPolicy.PetFee, frag.PetPolicy.PetFee)
	acc.PetPolicy.PetFeeType = fill(acc.PetPolicy.PetFeeType, frag.PetPolicy.PetFeeType)
	acc.PetPolicy.PetWeightLimit = fill(acc.PetPolicy.PetWeightLimit, frag.PetPolicy.PetWeightLimit)
	acc.PetPolicy.PetTypes = fillList(acc.PetPolicy.PetTypes, frag.PetPolicy.PetTypes)

	acc.AgeRestrictions.MinimumAge = fill(acc.AgeRestrictions.MinimumAge, frag.AgeRestrictions.MinimumAge)
	acc.AgeRestrictions.ChildrenPolicy = fill(acc.AgeRestrictions.ChildrenPolicy, frag.AgeRestrictions.ChildrenPolicy)

	acc.SmokingPolicy = fill(acc.SmokingPolicy, frag.SmokingPolicy)
}

func foldReviews(acc, frag *Reviews) {
	acc.OverallRating = fill(acc.OverallRating, frag.OverallRating)
	acc.TotalReviews = fill(acc.TotalReviews, frag.TotalReviews)
	if len(acc.RatingBreakdown) == 0 && len(frag.RatingBreakdown) > 0 {
		acc.RatingBreakdown = frag.RatingBreakdown
	}
	acc.RecentReviews = fillList(acc.RecentReviews, frag.RecentReviews)
}
