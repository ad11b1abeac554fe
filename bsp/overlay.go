// bsp/overlay.go
package bsp

import (
	"boardcode-go/bsp/bsperr"

	"github.com/andreyvit/tinyjson"
)

// ApplyOverlay merges an embedded JSON overlay into opts. The overlay is
// baked into the image next to the board table; recognized keys mirror the
// build knobs:
//
//	{"supply_voltage_mv": 3000, "use_resource_tracking": false,
//	 "custom_power_callback": true, "disable_low_power_lock": true}
//
// Unknown keys are ignored so older images accept newer overlays.
func ApplyOverlay(opts Options, raw []byte) (Options, error) {
	if len(raw) == 0 {
		return opts, nil
	}
	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return opts, bsperr.ErrInvalidOverlay
	}
	if v, ok := m["supply_voltage_mv"]; ok {
		f, ok := v.(float64)
		if !ok {
			return opts, bsperr.ErrInvalidOverlay
		}
		opts.SupplyMilliV = int32(f)
	}
	if v, ok := m["use_resource_tracking"]; ok {
		b, ok := v.(bool)
		if !ok {
			return opts, bsperr.ErrInvalidOverlay
		}
		opts.UseResourceTracking = b
	}
	if v, ok := m["custom_power_callback"]; ok {
		b, ok := v.(bool)
		if !ok {
			return opts, bsperr.ErrInvalidOverlay
		}
		opts.CustomPowerCallback = b
	}
	if v, ok := m["disable_low_power_lock"]; ok {
		b, ok := v.(bool)
		if !ok {
			return opts, bsperr.ErrInvalidOverlay
		}
		opts.DisableLowPowerLock = b
	}
	return opts, nil
}
