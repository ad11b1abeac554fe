package bsperr

import "testing"

func TestErrorsAreStableStrings(t *testing.T) {
	cases := map[string]error{
		"resource_manager_init_failed": ErrManagerInit,
		"already_reserved":             ErrAlreadyReserved,
		"not_reserved":                 ErrNotReserved,
		"registration_failed":          ErrChainFull,
		"low_power_locked":             ErrLowPowerLocked,
		"unknown_board":                ErrUnknownBoard,
		"invalid_overlay":              ErrInvalidOverlay,
	}
	for want, e := range cases {
		if e == nil || e.Error() != want {
			t.Fatalf("error %q mismatch: got %#v", want, e)
		}
	}
}
