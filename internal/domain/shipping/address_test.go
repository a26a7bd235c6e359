package shipping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	t.Run("well-formed four-line address", func(t *testing.T) {
		raw := "Rahul Singh\n9876543210\n#12 MG Road\nAmbala, Haryana 134003"

		parsed, err := ParseAddress(raw, ProfileFallback{})
		require.NoError(t, err)

		assert.Equal(t, "Rahul Singh", parsed.Name)
		assert.Equal(t, "9876543210", parsed.Phone)
		assert.Equal(t, "#12 MG Road", parsed.Street)
		assert.Equal(t, "Ambala", parsed.City)
		assert.Equal(t, "Haryana", parsed.State)
		assert.Equal(t, "134003", parsed.PostalCode)
	})

	t.Run("multiple street lines joined with comma", func(t *testing.T) {
		raw := "Priya Sharma\n+91 98765-43210\nFlat 4B, Rose Apartments\nSector 17\nChandigarh, Punjab 160017"

		parsed, err := ParseAddress(raw, ProfileFallback{})
		require.NoError(t, err)

		assert.Equal(t, "Flat 4B, Rose Apartments, Sector 17", parsed.Street)
		assert.Equal(t, "Chandigarh", parsed.City)
		assert.Equal(t, "Punjab", parsed.State)
		assert.Equal(t, "160017", parsed.PostalCode)
	})

	t.Run("phone strips all non-digit characters", func(t *testing.T) {
		raw := "Rahul Singh\n+91 98765-43210\nMG Road\nAmbala, Haryana 134003"

		parsed, err := ParseAddress(raw, ProfileFallback{})
		require.NoError(t, err)
		assert.Equal(t, "919876543210", parsed.Phone)
	})

	t.Run("blank lines are dropped before indexing", func(t *testing.T) {
		raw := "\nRahul Singh\n\n9876543210\n\n#12 MG Road\nAmbala, Haryana 134003\n\n"

		parsed, err := ParseAddress(raw, ProfileFallback{})
		require.NoError(t, err)
		assert.Equal(t, "Rahul Singh", parsed.Name)
		assert.Equal(t, "9876543210", parsed.Phone)
		assert.Equal(t, "#12 MG Road", parsed.Street)
	})

	t.Run("no six-digit run anywhere fails, never partial data", func(t *testing.T) {
		raw := "Rahul Singh\n9876543210\n#12 MG Road\nAmbala, Haryana"

		parsed, err := ParseAddress(raw, ProfileFallback{})
		assert.Nil(t, parsed)

		var vErr *AddressValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.MissingFields, "pincode")
		assert.Contains(t, vErr.MissingFields, "city")
		assert.Contains(t, vErr.MissingFields, "state")
	})

	t.Run("pincode present but locality unsplittable fails", func(t *testing.T) {
		raw := "Rahul Singh\n9876543210\n#12 MG Road\n134003"

		parsed, err := ParseAddress(raw, ProfileFallback{})
		assert.Nil(t, parsed)

		var vErr *AddressValidationError
		require.True(t, errors.As(err, &vErr))
		assert.NotContains(t, vErr.MissingFields, "pincode")
		assert.Contains(t, vErr.MissingFields, "city")
		assert.Contains(t, vErr.MissingFields, "state")
	})

	// Known limitation: a street line containing a run of 6 consecutive
	// digits is consumed as the locality line and vanishes from the street
	// address. This pins the behavior so a change to it is a conscious one.
	t.Run("street line with six-digit run is swallowed as locality", func(t *testing.T) {
		raw := "Rahul Singh\n9876543210\nUnit 482913 Tower A\nAmbala, Haryana 134003"

		parsed, err := ParseAddress(raw, ProfileFallback{})
		require.NoError(t, err)

		// The later locality line overwrites the false match, but the street
		// line itself is lost.
		assert.Equal(t, "134003", parsed.PostalCode)
		assert.Equal(t, "Ambala", parsed.City)
		assert.Equal(t, "Haryana", parsed.State)
		assert.Equal(t, "", parsed.Street)
	})

	t.Run("profile fallback fills missing name and phone", func(t *testing.T) {
		raw := "Anita Desai"

		fallback := ProfileFallback{Name: "Profile Name", Phone: "+91 90000 00001"}
		parsed, err := ParseAddress(raw, fallback)

		// Fails on locality, but exercises the fallback path for phone
		assert.Nil(t, parsed)
		var vErr *AddressValidationError
		require.True(t, errors.As(err, &vErr))

		raw = "Anita Desai\n\n\nMG Road\nAmbala, Haryana 134003"
		parsed, err = ParseAddress(raw, fallback)
		require.NoError(t, err)
		assert.Equal(t, "Anita Desai", parsed.Name)
		// Second non-empty line becomes the phone line even when it is not a
		// phone number; the format is positional.
		assert.Equal(t, "", parsed.Phone)
	})

	t.Run("empty input uses fallback and fails on locality", func(t *testing.T) {
		fallback := ProfileFallback{Name: "Profile Name", Phone: "(91) 9876543210"}

		parsed, err := ParseAddress("", fallback)
		assert.Nil(t, parsed)

		var vErr *AddressValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, []string{"pincode", "city", "state"}, vErr.MissingFields)
	})
}

func TestAddressValidationError_Error(t *testing.T) {
	err := &AddressValidationError{MissingFields: []string{"pincode", "city"}}
	assert.Equal(t, "invalid shipping address format: missing pincode, city", err.Error())
}
