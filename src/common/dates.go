package common

import (
	"math"
	"strconv"
	"time"

	"hbs/src/config"
)

// ParseID validates a path or body identifier. Identifiers are
// positive integers; anything else is ErrInvalidID.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(config.DATE_PARSE_FORMAT, s)
	if err != nil {
		return time.Time{}, NewValidationError("invalid date %q, expected %s", s, config.DATE_PARSE_FORMAT)
	}
	return t, nil
}

// Nights derives the night count from the stay window. Never trusted
// from client input at confirmation time.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}
