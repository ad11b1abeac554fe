//go:build rp2040

package provider

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"boardcode-go/bsp/cfg"
)

// Pin mux selectors used by the board tables on this target.
const (
	fnUART uint8 = 2
	fnI2C  uint8 = 3
)

// rp2Driver programs the RP2040 through the machine package. Pins arrive
// via MuxPin before EnablePeripheral references them, which is the order
// cfg.Apply guarantees.
type rp2Driver struct {
	// muxed collects pins per function selector, in table order.
	muxed map[uint8][]machine.Pin

	console *uartx.UART
	i2c     map[string]drivers.I2C

	clkSaved bool
}

var _ cfg.Driver = (*rp2Driver)(nil)
var _ interface {
	I2CByID(string) (drivers.I2C, bool)
} = (*rp2Driver)(nil)

func New() cfg.Driver {
	return &rp2Driver{
		muxed: map[uint8][]machine.Pin{},
		i2c:   map[string]drivers.I2C{},
	}
}

func (d *rp2Driver) ProgramClock(c cfg.ClockConfig) {
	// Peripheral clocks derive from clk_peri on this chip; dividers take
	// effect when the owning peripheral configures its baud/frequency.
}

func (d *rp2Driver) SetRail(r cfg.RailConfig) {
	// Fixed on-board regulator; nothing to program.
}

func (d *rp2Driver) SetSupplyVoltage(milliV int32) {
	// See SetRail.
}

func (d *rp2Driver) MuxPin(p cfg.PinConfig) {
	pin := machine.Pin(p.Pin)
	switch p.Mode {
	case cfg.PinOutput, cfg.PinOutputOpenDrain:
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Set(p.Initial)
	case cfg.PinInputPullup:
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	case cfg.PinInputPulldown:
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	case cfg.PinInput:
		pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	case cfg.PinAnalog:
		// Analog pads keep their reset state.
	}
	if p.Function != 0 {
		d.muxed[p.Function] = append(d.muxed[p.Function], pin)
	}
}

func (d *rp2Driver) EnablePeripheral(p cfg.PeripheralConfig) {
	if !p.Enable {
		return
	}
	switch p.ID {
	case "uart0":
		pins := d.muxed[fnUART]
		if len(pins) < 2 {
			return
		}
		d.console = uartx.UART0
		_ = d.console.Configure(uartx.UARTConfig{
			BaudRate: 115200,
			TX:       pins[0],
			RX:       pins[1],
		})
		_, _ = d.console.Write([]byte("bsp: console up\r\n"))
	case "i2c0":
		pins := d.muxed[fnI2C]
		if len(pins) < 2 {
			return
		}
		hw := machine.I2C0
		sda, scl := pins[0], pins[1]
		sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
		scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
		_ = hw.Configure(machine.I2CConfig{SDA: sda, SCL: scl, Frequency: 400_000})
		d.i2c[p.ID] = hw
	}
}

func (d *rp2Driver) SaveClockState() error {
	// The runtime parks the PLLs on deep sleep entry; remember that the
	// tree needs a re-lock on the way out.
	d.clkSaved = true
	return nil
}

func (d *rp2Driver) RestoreClockState() error {
	d.clkSaved = false
	return nil
}

// I2CByID exposes configured I2C peripherals as bus handles.
func (d *rp2Driver) I2CByID(id string) (drivers.I2C, bool) {
	hw, ok := d.i2c[id]
	return hw, ok
}
