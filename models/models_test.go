package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyStatusValid(t *testing.T) {
	for _, status := range []PropertyStatus{
		PropertyAvailable, PropertyRequested, PropertyRented, PropertyRemoved,
	} {
		assert.True(t, status.Valid(), "%s should be valid", status)
	}
	assert.False(t, PropertyStatus("sold").Valid())
	assert.False(t, PropertyStatus("").Valid())
}

func TestPropertyStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PropertyStatus
		allowed  bool
	}{
		{PropertyAvailable, PropertyRequested, true},
		{PropertyAvailable, PropertyRemoved, true},
		{PropertyAvailable, PropertyRented, false},
		{PropertyRequested, PropertyRented, true},
		{PropertyRequested, PropertyAvailable, true},
		{PropertyRequested, PropertyRemoved, true},
		{PropertyRented, PropertyAvailable, false},
		{PropertyRented, PropertyRemoved, false},
		{PropertyRemoved, PropertyAvailable, true},
		{PropertyRemoved, PropertyRequested, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestRequestStatusValid(t *testing.T) {
	for _, status := range []RequestStatus{
		RequestPending, RequestAccepted, RequestDeclined, RequestCancelled,
	} {
		assert.True(t, status.Valid(), "%s should be valid", status)
	}
	assert.False(t, RequestStatus("expired").Valid())
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, RequestPending.Terminal())
	assert.True(t, RequestAccepted.Terminal())
	assert.True(t, RequestDeclined.Terminal())
	assert.True(t, RequestCancelled.Terminal())
}

func TestProfileCanRequest(t *testing.T) {
	complete := Profile{Phone: "+263771000000", Age: 25}
	assert.True(t, complete.CanRequest())

	noPhone := Profile{Age: 25}
	assert.False(t, noPhone.CanRequest())

	noAge := Profile{Phone: "+263771000000"}
	assert.False(t, noAge.CanRequest())
}
