// bsp/options.go
package bsp

// Options are the bring-up knobs. They are fixed at build time: tag files
// below flip the build defaults, and an embedded overlay baked into the
// image can override them before Init runs. Nothing reads them afterwards.
type Options struct {
	// SupplyMilliV overrides the board's analog supply target.
	// 0 keeps the board default.
	SupplyMilliV int32

	// UseResourceTracking enables the reservation registry. With tracking
	// off the platform runs without a resource manager: reservation steps
	// become no-ops and conflicts go undetected.
	UseResourceTracking bool

	// CustomPowerCallback declares that the application registers its own
	// clock power-mode callback; automatic registration is skipped and
	// treated as success.
	CustomPowerCallback bool

	// DisableLowPowerLock skips locking out low-power entry during
	// bring-up.
	DisableLowPowerLock bool
}

// buildKnobs is flipped by init() in build-tagged option files.
var buildKnobs struct {
	noTracking     bool
	customCallback bool
	noLowPowerLock bool
}

// DefaultOptions returns the options selected by build tags.
func DefaultOptions() Options {
	return Options{
		UseResourceTracking: !buildKnobs.noTracking,
		CustomPowerCallback: buildKnobs.customCallback,
		DisableLowPowerLock: buildKnobs.noLowPowerLock,
	}
}
