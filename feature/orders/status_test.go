package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{"bogus", StatusConfirmed, false},
		{StatusPending, "bogus", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestMapPOSStatus(t *testing.T) {
	for pos, want := range map[string]string{
		"OPEN":      StatusPending,
		"APPROVED":  StatusConfirmed,
		"COMPLETED": StatusConfirmed,
		"CANCELED":  StatusCancelled,
		"FAILED":    StatusCancelled,
	} {
		got, ok := MapPOSStatus(pos)
		assert.True(t, ok, pos)
		assert.Equal(t, want, got, pos)
	}

	_, ok := MapPOSStatus("SOMETHING_NEW")
	assert.False(t, ok, "unknown vocabulary must not map")
}
