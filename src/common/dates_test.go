package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	assert.Nil(t, err)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"", "abc", "-1", "0", "1.5"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("06/01/2024")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestNights(t *testing.T) {
	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, Nights(in, out))

	// partial days round up
	out = time.Date(2024, 6, 4, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, Nights(in, out))

	assert.Equal(t, 1, Nights(in, in.Add(24*time.Hour)))
}
