// bsp/boards/np_proto.go
package boards

import (
	"boardcode-go/bsp/cfg"
	"boardcode-go/bsp/hwres"
)

// NPProto is the hand-wired prototype: same SoC as the devkit, lower core
// clock, no sensor bus, and only one divider claimed by the board.
const NPProto = "np-proto"

func init() {
	Register(Definition{
		Name:         NPProto,
		SupplyMilliV: 3300,
		Table: cfg.Table{
			Clocks: []cfg.ClockConfig{
				{ID: "periclk0", SourceHz: 48_000_000, Div: 1, Enable: true},
			},
			Rails: []cfg.RailConfig{
				{Rail: "vdda", MilliV: 3300},
			},
			Pins: []cfg.PinConfig{
				{Pin: 12, Mode: cfg.PinOutput, Function: 2, Initial: true},
				{Pin: 13, Mode: cfg.PinInput, Function: 2},
				{Pin: 25, Mode: cfg.PinOutput},
			},
			Peripherals: []cfg.PeripheralConfig{
				{ID: "uart0", Clock: "periclk0", Enable: true},
			},
		},
		DefaultBlocks: []hwres.BlockID{
			{Kind: hwres.KindClock, Block: Peri16BitDividers, Channel: 0},
		},
	})
}
