package bsp

import (
	"testing"

	"boardcode-go/bsp/bsperr"
)

func TestApplyOverlayOverridesKnobs(t *testing.T) {
	base := Options{UseResourceTracking: true}
	raw := []byte(`{"supply_voltage_mv": 3000, "use_resource_tracking": false, "disable_low_power_lock": true}`)

	got, err := ApplyOverlay(base, raw)
	if err != nil {
		t.Fatalf("ApplyOverlay: %v", err)
	}
	if got.SupplyMilliV != 3000 {
		t.Fatalf("SupplyMilliV = %d", got.SupplyMilliV)
	}
	if got.UseResourceTracking {
		t.Fatal("tracking not disabled by overlay")
	}
	if !got.DisableLowPowerLock {
		t.Fatal("low-power lock knob not set by overlay")
	}
	if got.CustomPowerCallback {
		t.Fatal("untouched knob changed")
	}
}

func TestApplyOverlayEmptyIsNoop(t *testing.T) {
	base := Options{UseResourceTracking: true, SupplyMilliV: 2800}
	got, err := ApplyOverlay(base, nil)
	if err != nil {
		t.Fatalf("ApplyOverlay: %v", err)
	}
	if got != base {
		t.Fatalf("options changed by empty overlay: %+v", got)
	}
}

func TestApplyOverlayRejectsNonObject(t *testing.T) {
	if _, err := ApplyOverlay(Options{}, []byte(`[1,2]`)); err != bsperr.ErrInvalidOverlay {
		t.Fatalf("err = %v, want ErrInvalidOverlay", err)
	}
}

func TestApplyOverlayRejectsWrongTypes(t *testing.T) {
	if _, err := ApplyOverlay(Options{}, []byte(`{"use_resource_tracking": "yes"}`)); err != bsperr.ErrInvalidOverlay {
		t.Fatalf("err = %v, want ErrInvalidOverlay", err)
	}
}
