package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// NewBookingReference returns a human-readable booking code in the
// form BK-<last 6 digits of epoch ms>-<random 0..999>, e.g.
// "BK-482913-57".
func NewBookingReference() string {
	ms := time.Now().UnixMilli() % 1000000
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		// crypto/rand failing is effectively unreachable; fall back
		// to a time-derived component so the code stays usable.
		return fmt.Sprintf("BK-%06d-%d", ms, time.Now().UnixNano()%1000)
	}
	return fmt.Sprintf("BK-%06d-%d", ms, n.Int64())
}

// NewGuestID synthesizes the identifier given to bookings made without
// an authenticated account.
func NewGuestID() string {
	return "guest-" + uuid.NewString()
}
