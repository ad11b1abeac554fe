// bsp/bsperr/errors.go
package bsperr

import "errors"

var (
	// Resource tracking
	ErrManagerInit     = errors.New("resource_manager_init_failed")
	ErrAlreadyReserved = errors.New("already_reserved")
	ErrNotReserved     = errors.New("not_reserved")

	// Power-mode chain
	ErrChainFull      = errors.New("registration_failed")
	ErrLowPowerLocked = errors.New("low_power_locked")

	// Boards / config
	ErrUnknownBoard   = errors.New("unknown_board")
	ErrInvalidOverlay = errors.New("invalid_overlay")
)
