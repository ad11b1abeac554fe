// bsp/cfg/recorder.go
package cfg

import "boardcode-go/x/strx"

// Recorder is the host-build Driver: it tracks the end state each call
// produces plus an ordered op log. Host demos print it; tests assert on it.
type Recorder struct {
	ops []string

	clockHz   map[string]uint32
	clockOn   map[string]bool
	railMV    map[string]int32
	pinMode   map[int]PinMode
	periphOn  map[string]bool
	supplyMV  int32
	clkSaved  bool
	saveCount int
}

var _ Driver = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		clockHz:  map[string]uint32{},
		clockOn:  map[string]bool{},
		railMV:   map[string]int32{},
		pinMode:  map[int]PinMode{},
		periphOn: map[string]bool{},
	}
}

func (r *Recorder) ProgramClock(c ClockConfig) {
	div := uint32(c.Div)
	if div == 0 {
		div = 1
	}
	r.clockHz[c.ID] = c.SourceHz / div
	r.clockOn[c.ID] = c.Enable
	r.ops = append(r.ops, "clock "+c.ID)
}

func (r *Recorder) SetRail(rc RailConfig) {
	r.railMV[rc.Rail] = rc.MilliV
	r.ops = append(r.ops, "rail "+rc.Rail)
}

func (r *Recorder) MuxPin(p PinConfig) {
	r.pinMode[p.Pin] = p.Mode
	r.ops = append(r.ops, "pin "+strx.Itoa(p.Pin))
}

func (r *Recorder) EnablePeripheral(p PeripheralConfig) {
	r.periphOn[p.ID] = p.Enable
	r.ops = append(r.ops, "periph "+p.ID)
}

func (r *Recorder) SetSupplyVoltage(milliV int32) {
	r.supplyMV = milliV
	r.ops = append(r.ops, "supply")
}

func (r *Recorder) SaveClockState() error {
	r.clkSaved = true
	r.saveCount++
	r.ops = append(r.ops, "clk_save")
	return nil
}

func (r *Recorder) RestoreClockState() error {
	r.clkSaved = false
	r.ops = append(r.ops, "clk_restore")
	return nil
}

// Ops returns the ordered call log.
func (r *Recorder) Ops() []string { return r.ops }

// ResetOps clears the call log without touching recorded state.
func (r *Recorder) ResetOps() { r.ops = nil }

// ClockHz returns the effective rate last programmed for a clock ID.
func (r *Recorder) ClockHz(id string) (uint32, bool) {
	hz, ok := r.clockHz[id]
	return hz, ok
}

// RailMilliV returns the last voltage set on a rail.
func (r *Recorder) RailMilliV(rail string) (int32, bool) {
	mv, ok := r.railMV[rail]
	return mv, ok
}

// SupplyMilliV returns the last analog supply target.
func (r *Recorder) SupplyMilliV() int32 { return r.supplyMV }

// ClockStateSaved reports whether the clock tree is currently parked.
func (r *Recorder) ClockStateSaved() bool { return r.clkSaved }

// State flattens the recorded end state for equality checks.
func (r *Recorder) State() map[string]int64 {
	out := map[string]int64{}
	for id, hz := range r.clockHz {
		out["clock:"+id] = int64(hz)
		if r.clockOn[id] {
			out["clock_on:"+id] = 1
		}
	}
	for rail, mv := range r.railMV {
		out["rail:"+rail] = int64(mv)
	}
	for pin, mode := range r.pinMode {
		out["pin:"+strx.Itoa(pin)] = int64(mode)
	}
	for id, on := range r.periphOn {
		if on {
			out["periph:"+id] = 1
		}
	}
	out["supply"] = int64(r.supplyMV)
	return out
}
