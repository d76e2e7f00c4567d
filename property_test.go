package propcap_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/propcap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapture(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	t.Run("populates capture metadata", func(t *testing.T) {
		t.Parallel()

		c := propcap.NewCapture("https://example.com/hotel/aurora", now,
			propcap.WithDataSource("Booking"),
			propcap.WithLanguage("en"),
			propcap.WithTimezone("Europe/Lisbon"),
		)

		assert.Equal(t, "2025-06-01T12:30:00Z", c.ScrapedAt)
		assert.Equal(t, "https://example.com/hotel/aurora", c.Source)
		require.NotNil(t, c.Property)
		assert.Equal(t, propcap.SchemaVersion, c.Property.Version)
		require.NotNil(t, c.Property.DataSource)
		assert.Equal(t, "Booking", *c.Property.DataSource)
		require.NotNil(t, c.Property.Language)
		assert.Equal(t, "en", *c.Property.Language)
		require.NotNil(t, c.Property.Timezone)
		assert.Equal(t, "Europe/Lisbon", *c.Property.Timezone)
		require.NotNil(t, c.Property.Contact.Website)
		assert.Equal(t, "https://example.com/hotel/aurora", *c.Property.Contact.Website)
	})

	t.Run("unavailable metadata stays null", func(t *testing.T) {
		t.Parallel()

		c := propcap.NewCapture("https://example.com", now,
			propcap.WithDataSource(""),
			propcap.WithLanguage("  "),
		)

		assert.Nil(t, c.Property.DataSource)
		assert.Nil(t, c.Property.Language)
		assert.Nil(t, c.Property.Timezone)
	})

	t.Run("skeleton key set is total with null values", func(t *testing.T) {
		t.Parallel()

		c := propcap.NewCapture("https://example.com", now)

		raw, err := json.Marshal(c.Property)
		require.NoError(t, err)

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &m))

		for _, key := range []string{
			"id", "name", "brand", "category", "description", "shortDescription",
			"status", "isActive", "isVerified", "verificationDate",
			"contact", "location", "amenities", "rooms", "policies", "reviews",
			"photos", "awards", "sustainability", "languages", "paymentMethods",
			"accessibility", "nearbyAttractions", "transportation",
			"businessFacilities", "seasonalInformation",
			"lastUpdated", "version", "dataSource", "language", "timezone",
		} {
			assert.Contains(t, m, key)
		}

		assert.Equal(t, "null", string(m["id"]))
		assert.Equal(t, "null", string(m["name"]))
		assert.Equal(t, "null", string(m["photos"]))

		var policies map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(m["policies"], &policies))
		for _, key := range []string{"checkIn", "checkOut", "cancellation", "petPolicy", "ageRestrictions", "smokingPolicy"} {
			assert.Contains(t, policies, key)
		}

		var contact map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(m["contact"], &contact))
		for _, key := range []string{"phone", "email", "website", "socialMedia"} {
			assert.Contains(t, contact, key)
		}
	})
}

func TestRoomType_IsSubstantive(t *testing.T) {
	t.Parallel()

	name := "Deluxe Double"
	rate := 120.0

	t.Run("room with a name is kept", func(t *testing.T) {
		t.Parallel()

		assert.True(t, propcap.RoomType{Name: &name}.IsSubstantive())
	})

	t.Run("room with only pricing is kept", func(t *testing.T) {
		t.Parallel()

		r := propcap.RoomType{Pricing: &propcap.RoomPricing{BaseRate: &rate}}

		assert.True(t, r.IsSubstantive())
	})

	t.Run("room with only an amenity list is dropped", func(t *testing.T) {
		t.Parallel()

		r := propcap.RoomType{Amenities: []string{"WiFi"}}

		assert.False(t, r.IsSubstantive())
	})

	t.Run("empty room is dropped", func(t *testing.T) {
		t.Parallel()

		assert.False(t, propcap.RoomType{}.IsSubstantive())
	})
}
