// bsp/power/chain.go
package power

import (
	"sync"

	"boardcode-go/bsp/bsperr"
)

// Transition is a system-wide power-mode change observed by callbacks.
type Transition uint8

const (
	EnterLowPower Transition = iota
	ExitLowPower
)

func (t Transition) String() string {
	if t == EnterLowPower {
		return "enter_low_power"
	}
	return "exit_low_power"
}

// Type selects which transitions a callback wants to observe.
type Type uint8

const (
	OnEnter Type = iota
	OnExit
	OnBoth
)

// Handler reacts to a transition. A non-nil error from an EnterLowPower
// notification vetoes the transition. Arg is the registered context value.
type Handler func(t Transition, arg any) error

// Callback is one registered observer. Order controls invocation position:
// ascending on entry, descending on exit, ties broken by registration order.
// The chain holds Arg by reference for the registration lifetime; the caller
// keeps its storage valid.
type Callback struct {
	Order   uint8
	Type    Type
	Handler Handler
	Arg     any
}

// MaxCallbacks bounds the chain, mirroring the fixed slot table of the
// underlying platform.
const MaxCallbacks = 16

// ClockCallbackOrder is the order reserved for the clock deep-sleep callback.
// It is the numerically greatest order in use, so clock shutdown is the last
// action on entry to low power and clock restore the first on exit. Keeping
// the clock callback innermost minimizes the time other subsystems run on a
// stopped or not-yet-stable clock.
const ClockCallbackOrder uint8 = 255

type entry struct {
	cb  Callback
	seq uint16
}

// Chain is the ordered power-mode callback list. It is populated during the
// bring-up pass; later registration from other tasks is serialized by the
// platform scheduler, the mutex here covers host builds and tests.
type Chain struct {
	mu      sync.Mutex
	entries []entry // sorted by (Order, seq)
	seq     uint16
	locks   int
	lowPwr  bool
}

func NewChain() *Chain {
	return &Chain{entries: make([]entry, 0, MaxCallbacks)}
}

// Register inserts cb into the chain. It fails with ErrChainFull once
// MaxCallbacks registrations are held; earlier registrations are untouched.
// A nil handler is a programmer error and panics.
func (c *Chain) Register(cb Callback) error {
	if cb.Handler == nil {
		panic("power: nil callback handler")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= MaxCallbacks {
		return bsperr.ErrChainFull
	}
	e := entry{cb: cb, seq: c.seq}
	c.seq++
	// Insert after all entries with Order <= cb.Order to keep ties stable.
	i := len(c.entries)
	for i > 0 && c.entries[i-1].cb.Order > cb.Order {
		i--
	}
	c.entries = append(c.entries, entry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = e
	return nil
}

// Len returns the number of registered callbacks.
func (c *Chain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// InLowPower reports the chain's view of the current power mode.
func (c *Chain) InLowPower() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lowPwr
}

// LockLowPower prevents EnterLowPower transitions until a matching unlock.
// Locks nest.
func (c *Chain) LockLowPower() {
	c.mu.Lock()
	c.locks++
	c.mu.Unlock()
}

// UnlockLowPower undoes one LockLowPower. Unlocking below zero is a
// programmer error and panics.
func (c *Chain) UnlockLowPower() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks == 0 {
		panic("power: unlock without lock")
	}
	c.locks--
}

// LockCount returns the number of outstanding low-power locks.
func (c *Chain) LockCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locks
}

func (e entry) matches(t Transition) bool {
	switch e.cb.Type {
	case OnBoth:
		return true
	case OnEnter:
		return t == EnterLowPower
	default:
		return t == ExitLowPower
	}
}

// Notify announces a transition to every registered callback matching it.
//
// EnterLowPower walks the chain in ascending order. Any handler error vetoes
// the transition: callbacks already notified are informed via ExitLowPower in
// reverse order, so partially-applied changes roll back and the observable
// state returns to its pre-transition equivalent. The veto error is returned.
// A held low-power lock vetoes before any callback runs.
//
// ExitLowPower walks the chain in descending order and always completes; the
// first handler error is retained and returned after the walk.
func (c *Chain) Notify(t Transition) error {
	c.mu.Lock()
	if t == EnterLowPower && c.locks > 0 {
		c.mu.Unlock()
		return bsperr.ErrLowPowerLocked
	}
	snap := make([]entry, len(c.entries))
	copy(snap, c.entries)
	c.mu.Unlock()

	if t == EnterLowPower {
		// notified tracks the already-invoked prefix for rollback.
		notified := snap[:0:0]
		for _, e := range snap {
			if !e.matches(t) {
				continue
			}
			if err := e.cb.Handler(EnterLowPower, e.cb.Arg); err != nil {
				for i := len(notified) - 1; i >= 0; i-- {
					// Rollback informs every already-invoked callback,
					// independent of its declared type.
					_ = notified[i].cb.Handler(ExitLowPower, notified[i].cb.Arg)
				}
				return err
			}
			notified = append(notified, e)
		}
		c.setLowPower(true)
		return nil
	}

	var first error
	for i := len(snap) - 1; i >= 0; i-- {
		e := snap[i]
		if !e.matches(t) {
			continue
		}
		if err := e.cb.Handler(ExitLowPower, e.cb.Arg); err != nil && first == nil {
			first = err
		}
	}
	c.setLowPower(false)
	return first
}

func (c *Chain) setLowPower(v bool) {
	c.mu.Lock()
	c.lowPwr = v
	c.mu.Unlock()
}

// orders returns the registered orders in invocation-on-entry sequence.
// Test hook.
func (c *Chain) orders() []uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]uint8, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.cb.Order
	}
	return out
}
