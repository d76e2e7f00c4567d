package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/propcap"
	"github.com/fwojciec/propcap/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policyPage(body string) *propcap.PageSnapshot {
	return &propcap.PageSnapshot{
		URL: "https://example.com/hotel",
		HTML: `<html><head><title>Hotel</title></head><body>
<main><h1>Hotel Aurora</h1><p>A quiet boutique hotel in Alfama.</p></main>
<section>` + body + `</section>
</body></html>`,
	}
}

func TestPolicyReader_Read(t *testing.T) {
	t.Parallel()

	t.Run("extracts check-in and check-out times", func(t *testing.T) {
		t.Parallel()

		frag, err := trafilatura.NewPolicyReader().Read(policyPage(
			`<p>Check-in from 15:00. Check-out until 11:00.</p>`))
		require.NoError(t, err)
		require.NotNil(t, frag)
		require.NotNil(t, frag.Policies.CheckIn.Time)
		assert.Equal(t, "15:00", *frag.Policies.CheckIn.Time)
		require.NotNil(t, frag.Policies.CheckOut.Time)
		assert.Equal(t, "11:00", *frag.Policies.CheckOut.Time)
	})

	t.Run("zero-pads single-digit hours", func(t *testing.T) {
		t.Parallel()

		frag, err := trafilatura.NewPolicyReader().Read(policyPage(
			`<p>Check in is possible from 9:30 in the morning.</p>`))
		require.NoError(t, err)
		require.NotNil(t, frag)
		require.NotNil(t, frag.Policies.CheckIn.Time)
		assert.Equal(t, "09:30", *frag.Policies.CheckIn.Time)
	})

	t.Run("extracts cancellation phrases", func(t *testing.T) {
		t.Parallel()

		frag, err := trafilatura.NewPolicyReader().Read(policyPage(
			`<p>Free cancellation until 48 hours before arrival.
Some rates are non-refundable. A no-show fee equals the first night.</p>`))
		require.NoError(t, err)
		require.NotNil(t, frag)
		require.NotNil(t, frag.Policies.Cancellation.FreeCancellation)
		assert.Equal(t, "Free cancellation", *frag.Policies.Cancellation.FreeCancellation)
		require.NotNil(t, frag.Policies.Cancellation.RefundPolicy)
		assert.Equal(t, "Non-refundable", *frag.Policies.Cancellation.RefundPolicy)
		require.NotNil(t, frag.Policies.Cancellation.NoShowPolicy)
		assert.Equal(t, "No-show charges apply", *frag.Policies.Cancellation.NoShowPolicy)
	})

	t.Run("pet policy is tri-state", func(t *testing.T) {
		t.Parallel()

		r := trafilatura.NewPolicyReader()

		frag, err := r.Read(policyPage(`<p>Pets allowed on request.</p>`))
		require.NoError(t, err)
		require.NotNil(t, frag)
		require.NotNil(t, frag.Policies.PetPolicy.PetsAllowed)
		assert.True(t, *frag.Policies.PetPolicy.PetsAllowed)

		frag, err = r.Read(policyPage(`<p>Sorry, no pets.</p>`))
		require.NoError(t, err)
		require.NotNil(t, frag)
		require.NotNil(t, frag.Policies.PetPolicy.PetsAllowed)
		assert.False(t, *frag.Policies.PetPolicy.PetsAllowed)

		frag, err = r.Read(policyPage(`<p>Breakfast is served daily.</p>`))
		require.NoError(t, err)
		if frag != nil {
			assert.Nil(t, frag.Policies.PetPolicy.PetsAllowed)
		}
	})

	t.Run("time too far from the keyword is ignored", func(t *testing.T) {
		t.Parallel()

		frag, err := trafilatura.NewPolicyReader().Read(policyPage(
			`<p>Check-in is at the reception desk on the ground floor near the lobby bar entrance hall. The spa opens at 10:30.</p>`))
		require.NoError(t, err)
		if frag != nil {
			assert.Nil(t, frag.Policies.CheckIn.Time)
		}
	})

	t.Run("reports absence when no pattern matches", func(t *testing.T) {
		t.Parallel()

		frag, err := trafilatura.NewPolicyReader().Read(policyPage(
			`<p>Rooftop terrace with a view over the river.</p>`))
		require.NoError(t, err)
		assert.Nil(t, frag)
	})
}
