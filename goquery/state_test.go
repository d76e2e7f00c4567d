package goquery_test

import (
	"testing"

	"github.com/fwojciec/propcap/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateReader_Read(t *testing.T) {
	t.Parallel()

	t.Run("extracts hotel fields from the state island", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<script id="__NEXT_DATA__" type="application/json">
{
  "props": {
    "pageProps": {
      "hotel": {
        "id": 884211,
        "name": "Hotel Aurora",
        "address": {"street": "Rua das Flores 12", "city": "Lisbon", "zip": "1100-001", "country": "Portugal"},
        "latitude": 38.7223,
        "longitude": -9.1393,
        "aggregateRating": {"ratingValue": 8.9, "reviewCount": 412},
        "rooms": [
          {"name": "Deluxe Double", "size": "24 m²", "bedType": "1 queen bed", "maxOccupancy": 2, "price": 145.5, "currency": "EUR"},
          {"name": "Suite", "area": "40 m²", "baseRate": 260}
        ]
      }
    }
  }
}
</script>
</body></html>`

		frag, err := goquery.NewStateReader().Read(snap(html))
		require.NoError(t, err)
		require.NotNil(t, frag)

		require.NotNil(t, frag.ID)
		assert.Equal(t, "884211", *frag.ID)
		require.NotNil(t, frag.Name)
		assert.Equal(t, "Hotel Aurora", *frag.Name)
		require.NotNil(t, frag.Location.Address.City)
		assert.Equal(t, "Lisbon", *frag.Location.Address.City)
		require.NotNil(t, frag.Location.Address.PostalCode)
		assert.Equal(t, "1100-001", *frag.Location.Address.PostalCode)
		require.NotNil(t, frag.Location.Coordinates.Longitude)
		assert.InDelta(t, -9.1393, *frag.Location.Coordinates.Longitude, 0.0001)
		require.NotNil(t, frag.Reviews.TotalReviews)
		assert.Equal(t, 412, *frag.Reviews.TotalReviews)

		require.Len(t, frag.Rooms.RoomTypes, 2)
		first := frag.Rooms.RoomTypes[0]
		require.NotNil(t, first.Name)
		assert.Equal(t, "Deluxe Double", *first.Name)
		require.NotNil(t, first.BedConfiguration)
		assert.Equal(t, "1 queen bed", *first.BedConfiguration)
		require.NotNil(t, first.MaxOccupancy)
		assert.Equal(t, 2, *first.MaxOccupancy)
		require.NotNil(t, first.Pricing)
		require.NotNil(t, first.Pricing.BaseRate)
		assert.InDelta(t, 145.5, *first.Pricing.BaseRate, 0.0001)
		require.NotNil(t, first.Pricing.Currency)
		assert.Equal(t, "EUR", *first.Pricing.Currency)

		second := frag.Rooms.RoomTypes[1]
		require.NotNil(t, second.Size)
		assert.Equal(t, "40 m²", *second.Size)
		require.NotNil(t, second.Pricing)
		require.NotNil(t, second.Pricing.BaseRate)
		assert.InDelta(t, 260, *second.Pricing.BaseRate, 0.0001)
	})

	t.Run("walks alternate identifier paths", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<script id="__NEXT_DATA__" type="application/json">
{"query": {"hotelId": "ag-5521"}}
</script>
</body></html>`

		frag, err := goquery.NewStateReader().Read(snap(html))
		require.NoError(t, err)
		require.NotNil(t, frag)
		require.NotNil(t, frag.ID)
		assert.Equal(t, "ag-5521", *frag.ID)
	})

	t.Run("treats a malformed island as absent", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<script id="__NEXT_DATA__" type="application/json">{broken</script>
</body></html>`

		frag, err := goquery.NewStateReader().Read(snap(html))
		require.NoError(t, err)
		assert.Nil(t, frag)
	})

	t.Run("reports absence when the island is missing", func(t *testing.T) {
		t.Parallel()

		frag, err := goquery.NewStateReader().Read(snap("<html><body></body></html>"))
		require.NoError(t, err)
		assert.Nil(t, frag)
	})

	t.Run("missing intermediate keys leave fields unknown", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<script id="__NEXT_DATA__" type="application/json">
{"props": {"pageProps": {"hotel": {"name": "Hotel Parcial"}}}}
</script>
</body></html>`

		frag, err := goquery.NewStateReader().Read(snap(html))
		require.NoError(t, err)
		require.NotNil(t, frag)
		require.NotNil(t, frag.Name)
		assert.Equal(t, "Hotel Parcial", *frag.Name)
		assert.Nil(t, frag.ID)
		assert.Nil(t, frag.Location.Coordinates.Latitude)
		assert.Nil(t, frag.Reviews.OverallRating)
		assert.Empty(t, frag.Rooms.RoomTypes)
	})
}
