package goquery

import (
	"encoding/json"

	"github.com/fwojciec/propcap"
)

// Ensure StateReader implements propcap.Reader at compile time.
var _ propcap.Reader = (*StateReader)(nil)

// StateReader extracts the embedded application-state view of the property:
// the __NEXT_DATA__ data island rendered by the page framework. The blob's
// shape varies between page versions, so a small set of known paths is walked
// defensively; an absent intermediate key degrades to the field staying
// unknown, and a malformed blob degrades to the whole source being absent.
type StateReader struct{}

// NewStateReader creates a new StateReader.
func NewStateReader() *StateReader {
	return &StateReader{}
}

// Name identifies the reader.
func (r *StateReader) Name() string { return "state" }

// Read returns the fields found in the application-state blob, or nil if the
// page embeds none.
func (r *StateReader) Read(snap *propcap.PageSnapshot) (*propcap.Property, error) {
	doc, err := parseDoc(snap)
	if err != nil {
		return nil, err
	}

	sel := doc.Find("#__NEXT_DATA__").First()
	if sel.Length() == 0 {
		return nil, nil
	}

	var state map[string]any
	if err := json.Unmarshal([]byte(sel.Text()), &state); err != nil {
		return nil, nil // present but malformed: absent
	}

	frag := &propcap.Property{}

	frag.ID = firstID(state,
		[]string{"props", "pageProps", "hotelId"},
		[]string{"props", "pageProps", "hotel", "id"},
		[]string{"query", "hotelId"},
		[]string{"state", "hotel", "id"},
	)

	if name, ok := firstPath(state,
		[]string{"props", "pageProps", "hotel", "name"},
		[]string{"props", "pageProps", "name"},
	).(string); ok {
		frag.Name = propcap.TrimOrNil(name)
	}

	if addr, ok := firstPath(state,
		[]string{"props", "pageProps", "hotel", "address"},
		[]string{"props", "pageProps", "address"},
	).(map[string]any); ok {
		frag.Location.Address.Street = firstLDString(addr, "street")
		frag.Location.Address.City = firstLDString(addr, "city", "locality")
		frag.Location.Address.State = firstLDString(addr, "state", "region")
		frag.Location.Address.PostalCode = firstLDString(addr, "postalCode", "zip")
		frag.Location.Address.Country = firstLDString(addr, "country")
	}

	frag.Location.Coordinates.Latitude = firstNumber(state,
		[]string{"props", "pageProps", "hotel", "latitude"},
		[]string{"props", "pageProps", "latitude"},
		[]string{"props", "pageProps", "hotel", "lat"},
	)
	frag.Location.Coordinates.Longitude = firstNumber(state,
		[]string{"props", "pageProps", "hotel", "longitude"},
		[]string{"props", "pageProps", "longitude"},
		[]string{"props", "pageProps", "hotel", "lng"},
	)

	if agg, ok := firstPath(state,
		[]string{"props", "pageProps", "hotel", "aggregateRating"},
		[]string{"props", "pageProps", "aggregateRating"},
	).(map[string]any); ok {
		frag.Reviews.OverallRating = ldNumber(agg, "ratingValue")
		if c := ldCount(agg, "reviewCount"); c != nil {
			frag.Reviews.TotalReviews = c
		} else {
			frag.Reviews.TotalReviews = ldCount(agg, "reviewTotal")
		}
	}

	if rooms, ok := firstPath(state,
		[]string{"props", "pageProps", "rooms"},
		[]string{"props", "pageProps", "hotel", "rooms"},
	).([]any); ok {
		frag.Rooms.RoomTypes = stateRooms(rooms)
	}

	return frag, nil
}

// stateRooms maps the state blob's room list onto room-type records.
func stateRooms(rooms []any) []propcap.RoomType {
	var out []propcap.RoomType
	for _, item := range rooms {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		room := propcap.RoomType{
			Name:             ldString(m, "name"),
			Size:             firstLDString(m, "size", "area"),
			BedConfiguration: firstLDString(m, "bedConfiguration", "bedType"),
		}
		room.MaxOccupancy = ldCount(m, "maxOccupancy")
		if rate := firstNumberOf(m, "price", "baseRate"); rate != nil {
			room.Pricing = &propcap.RoomPricing{
				BaseRate: rate,
				Currency: ldString(m, "currency"),
			}
		}
		out = append(out, room)
	}
	return out
}

// walkPath descends nested maps along path, returning nil when any
// intermediate key is absent or not an object.
func walkPath(root any, path []string) any {
	cur := root
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func firstPath(root any, paths ...[]string) any {
	for _, path := range paths {
		if v := walkPath(root, path); v != nil {
			return v
		}
	}
	return nil
}

func firstID(root any, paths ...[]string) *string {
	for _, path := range paths {
		if id := coerceID(walkPath(root, path)); id != nil {
			return id
		}
	}
	return nil
}

func firstNumber(root any, paths ...[]string) *float64 {
	for _, path := range paths {
		if v := walkPath(root, path); v != nil {
			if n := numberValue(v); n != nil {
				return n
			}
		}
	}
	return nil
}

func firstNumberOf(m map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		if n := ldNumber(m, key); n != nil {
			return n
		}
	}
	return nil
}

func numberValue(v any) *float64 {
	return ldNumber(map[string]any{"v": v}, "v")
}
