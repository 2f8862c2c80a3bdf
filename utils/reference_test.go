package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var referenceFormat = regexp.MustCompile(`^BK-\d{6}-\d{1,3}$`)

func TestNewBookingReferenceFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		ref := NewBookingReference()
		assert.Regexp(t, referenceFormat, ref)
	}
}

func TestNewGuestID(t *testing.T) {
	id := NewGuestID()
	assert.True(t, strings.HasPrefix(id, "guest-"))
	assert.NotEqual(t, id, NewGuestID())
}
