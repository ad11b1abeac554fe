// bsp/bsp.go
//
// Package bsp sequences board bring-up: establish resource tracking, apply
// the generated configuration table, hook the clock system into power-mode
// transitions, and claim the blocks the board reserves for itself.
package bsp

import (
	"tinygo.org/x/drivers"

	"boardcode-go/bsp/boards"
	"boardcode-go/bsp/bsperr"
	"boardcode-go/bsp/cfg"
	"boardcode-go/bsp/hwres"
	"boardcode-go/bsp/power"
	"boardcode-go/x/mathx"
)

// HolderTag marks reservations made on behalf of board-level logic.
const HolderTag = "bsp"

// Analog supply window accepted by the silicon.
const (
	minSupplyMilliV = 1700
	maxSupplyMilliV = 3600
)

// Board is the explicit bring-up context: it owns the reservation registry
// and the power callback chain for the life of the process. Construct one at
// start-up and call Init exactly once, before any concurrent task runs; the
// registry and chain stay externally usable afterwards (reserve, release,
// register), serialized by the platform's own scheduling.
type Board struct {
	def  boards.Definition
	drv  cfg.Driver
	opts Options

	res   *hwres.Manager
	chain *power.Chain

	// newManager exists so providers with fallible backing stores (and
	// tests) can substitute the constructor.
	newManager func() (*hwres.Manager, error)
}

// New builds a bring-up context for def driving drv.
func New(def boards.Definition, drv cfg.Driver, opts Options) *Board {
	return &Board{
		def:        def,
		drv:        drv,
		opts:       opts,
		chain:      power.NewChain(),
		newManager: hwres.NewManager,
	}
}

// NewSelected builds a context for the build-selected board with the
// build-selected options.
func NewSelected(drv cfg.Driver) *Board {
	return New(boards.Selected(), drv, DefaultOptions())
}

// NewByName builds a context for a registered board.
func NewByName(name string, drv cfg.Driver, opts Options) (*Board, error) {
	def, ok := boards.ByName(name)
	if !ok {
		return nil, bsperr.ErrUnknownBoard
	}
	return New(def, drv, opts), nil
}

// Init runs the bring-up sequence and returns the first failure, or nil.
//
// Steps, in order: resource-manager init, supply voltage, configuration
// apply, clock power-callback registration, low-power lock, default block
// reservations. A manager init failure is fatal: the later steps that need
// tracking or a healthy platform are skipped. Configuration apply runs
// unconditionally — leaving pins and clocks unconfigured is worse than
// reporting a stale partial result. Reservations are best-effort: every
// default block is attempted and the first error wins, so the caller sees
// the full board state even when one conflict exists.
//
// Init never panics; the caller decides whether a non-nil result halts
// start-up. A second call reapplies configuration (idempotent) but fails on
// the first default block, which is already held from the first pass.
func (b *Board) Init() error {
	var first error
	keep := func(err error) {
		if first == nil {
			first = err
		}
	}

	fatal := false
	if b.opts.UseResourceTracking && b.res == nil {
		m, err := b.newManager()
		if err != nil || m == nil {
			keep(bsperr.ErrManagerInit)
			fatal = true
		} else {
			b.res = m
		}
	}

	if !fatal {
		mv := b.opts.SupplyMilliV
		if mv == 0 {
			mv = b.def.SupplyMilliV
		}
		if mv != 0 {
			b.drv.SetSupplyVoltage(mathx.Clamp(mv, minSupplyMilliV, maxSupplyMilliV))
		}
	}

	cfg.Apply(b.drv, b.def.Table)

	if fatal {
		return first
	}

	if !b.opts.CustomPowerCallback {
		if err := b.registerClockCallback(); err != nil {
			keep(err)
		}
	}

	if !b.opts.DisableLowPowerLock {
		b.chain.LockLowPower()
	}

	if b.opts.UseResourceTracking {
		for _, id := range b.def.DefaultBlocks {
			if err := b.res.Reserve(id, HolderTag); err != nil {
				keep(err)
			}
		}
	}

	return first
}

// registerClockCallback installs the clock deep-sleep handler at the
// last-mile order: last to run on entry, first on exit.
func (b *Board) registerClockCallback() error {
	return b.chain.Register(power.Callback{
		Order:   power.ClockCallbackOrder,
		Type:    power.OnBoth,
		Handler: clockTransition,
		Arg:     b.drv,
	})
}

// clockTransition parks the clock tree entering low power and re-locks it on
// the way out.
func clockTransition(t power.Transition, arg any) error {
	d := arg.(cfg.Driver)
	if t == power.EnterLowPower {
		return d.SaveClockState()
	}
	return d.RestoreClockState()
}

// Resources returns the reservation registry, or nil when tracking is
// disabled or manager init failed.
func (b *Board) Resources() *hwres.Manager { return b.res }

// Power returns the power-mode callback chain.
func (b *Board) Power() *power.Chain { return b.chain }

// Driver returns the hardware driver the board was built with.
func (b *Board) Driver() cfg.Driver { return b.drv }

// Definition returns the board definition in use.
func (b *Board) Definition() boards.Definition { return b.def }

// I2CProvider is implemented by drivers that expose the I2C peripherals
// they configured as bus handles.
type I2CProvider interface {
	I2CByID(id string) (drivers.I2C, bool)
}

// I2C returns the handle for a configured I2C peripheral, when the driver
// provides one. Configure devices on it only after Init has returned.
func (b *Board) I2C(id string) (drivers.I2C, bool) {
	if p, ok := b.drv.(I2CProvider); ok {
		return p.I2CByID(id)
	}
	return nil, false
}
