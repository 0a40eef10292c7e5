package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, ValidTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{BookingPending, BookingCompleted},
		{BookingPending, BookingPending},
		{BookingConfirmed, BookingPending},
		{BookingCompleted, BookingCancelled},
		{BookingCompleted, BookingConfirmed},
		{BookingCancelled, BookingPending},
		{BookingCancelled, BookingConfirmed},
		{"unknown", BookingConfirmed},
	}
	for _, tc := range denied {
		assert.False(t, ValidTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}
