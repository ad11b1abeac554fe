// bsp/cfg/table.go
package cfg

// The configuration table is produced offline by the board design tool and
// compiled in read-only. The core consumes it as-is: no runtime validation,
// no mutation. Section structs carry the designed power-on state.

// PinMode mirrors the drive modes the pin mux distinguishes.
type PinMode uint8

const (
	PinAnalog PinMode = iota
	PinInput
	PinInputPullup
	PinInputPulldown
	PinOutput
	PinOutputOpenDrain
)

// ClockConfig assigns a divider to a peripheral clock and its target rate.
type ClockConfig struct {
	ID       string // e.g. "periclk0"
	SourceHz uint32
	Div      uint16
	Enable   bool
}

// RailConfig sets a power domain's designed voltage.
type RailConfig struct {
	Rail   string // e.g. "vdda"
	MilliV int32
}

// PinConfig routes one pad: drive mode, mux function, initial level.
type PinConfig struct {
	Pin      int
	Mode     PinMode
	Function uint8 // mux selector; 0 is plain GPIO
	Initial  bool
}

// PeripheralConfig enables a peripheral block against an already-running
// clock. Clock names reference ClockConfig.ID entries.
type PeripheralConfig struct {
	ID     string // e.g. "uart0", "i2c0"
	Clock  string
	Enable bool
}

// Table is the complete static configuration for one board.
type Table struct {
	Clocks      []ClockConfig
	Rails       []RailConfig
	Pins        []PinConfig
	Peripherals []PeripheralConfig
}

// Driver is the hardware face of the applier. Implementations program real
// silicon (build-tagged providers) or record calls (host builds, tests).
// Every method sets absolute state, never toggles, so replaying a table is
// harmless.
type Driver interface {
	ProgramClock(c ClockConfig)
	SetRail(r RailConfig)
	MuxPin(p PinConfig)
	EnablePeripheral(p PeripheralConfig)

	// SetSupplyVoltage programs the analog supply target in millivolts.
	SetSupplyVoltage(milliV int32)

	// SaveClockState / RestoreClockState bracket deep sleep: save parks the
	// clock tree for the low-power state, restore re-locks it on wakeup.
	SaveClockState() error
	RestoreClockState() error
}

// Apply drives d to the table's designed power-on state.
//
// Ordering is load-bearing: clock and rail sections run strictly before pin
// mux and peripheral sections, because several peripheral settings are
// undefined while their clock source is stopped. Apply is idempotent and
// returns nothing; the table was validated at build time.
func Apply(d Driver, t Table) {
	for _, c := range t.Clocks {
		d.ProgramClock(c)
	}
	for _, r := range t.Rails {
		d.SetRail(r)
	}
	for _, p := range t.Pins {
		d.MuxPin(p)
	}
	for _, p := range t.Peripherals {
		d.EnablePeripheral(p)
	}
}
