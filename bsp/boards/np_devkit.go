// bsp/boards/np_devkit.go
package boards

import (
	"boardcode-go/bsp/cfg"
	"boardcode-go/bsp/hwres"
)

// NPDevkit is the default board. The table below is the compiled form of
// the devkit's generated configuration; the two 16-bit divider channels in
// DefaultBlocks feed board-internal timing and are claimed before any
// application allocation runs.
const NPDevkit = "np-devkit"

// Peri16BitDividers is the divider bank holding the board's default claims.
const Peri16BitDividers uint8 = 2

func init() {
	Register(Definition{
		Name:         NPDevkit,
		SupplyMilliV: 3300,
		Table: cfg.Table{
			Clocks: []cfg.ClockConfig{
				{ID: "periclk0", SourceHz: 100_000_000, Div: 2, Enable: true},
				{ID: "periclk1", SourceHz: 100_000_000, Div: 4, Enable: true},
			},
			Rails: []cfg.RailConfig{
				{Rail: "vdda", MilliV: 3300},
			},
			Pins: []cfg.PinConfig{
				// Watch-crystal pair, analog, no mux.
				{Pin: 0, Mode: cfg.PinAnalog},
				{Pin: 1, Mode: cfg.PinAnalog},
				// Debug console.
				{Pin: 12, Mode: cfg.PinOutput, Function: 2, Initial: true}, // uart0 TX
				{Pin: 13, Mode: cfg.PinInput, Function: 2},                 // uart0 RX
				// Sensor bus.
				{Pin: 18, Mode: cfg.PinOutputOpenDrain, Function: 3}, // i2c0 SDA
				{Pin: 19, Mode: cfg.PinOutputOpenDrain, Function: 3}, // i2c0 SCL
				// Status LED, off at power-on.
				{Pin: 25, Mode: cfg.PinOutput},
			},
			Peripherals: []cfg.PeripheralConfig{
				{ID: "uart0", Clock: "periclk0", Enable: true},
				{ID: "i2c0", Clock: "periclk1", Enable: true},
			},
		},
		DefaultBlocks: []hwres.BlockID{
			{Kind: hwres.KindClock, Block: Peri16BitDividers, Channel: 0},
			{Kind: hwres.KindClock, Block: Peri16BitDividers, Channel: 1},
		},
	})
}
