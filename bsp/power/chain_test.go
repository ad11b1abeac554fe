package power

import (
	"errors"
	"testing"

	"boardcode-go/bsp/bsperr"
)

// recorder appends "<tag>:<transition>" to a shared log.
type recorder struct {
	log *[]string
	tag string
}

func (r recorder) handler(t Transition, arg any) error {
	*r.log = append(*r.log, r.tag+":"+t.String())
	return nil
}

func register(t *testing.T, c *Chain, order uint8, typ Type, h Handler) {
	t.Helper()
	if err := c.Register(Callback{Order: order, Type: typ, Handler: h}); err != nil {
		t.Fatalf("register order=%d: %v", order, err)
	}
}

func TestNotifyOrderAscendingOnEntry(t *testing.T) {
	c := NewChain()
	var log []string
	register(t, c, 20, OnBoth, recorder{&log, "b"}.handler)
	register(t, c, 10, OnBoth, recorder{&log, "a"}.handler)
	register(t, c, ClockCallbackOrder, OnBoth, recorder{&log, "clk"}.handler)
	register(t, c, 20, OnBoth, recorder{&log, "b2"}.handler) // tie with "b"

	if err := c.Notify(EnterLowPower); err != nil {
		t.Fatalf("enter: %v", err)
	}
	want := []string{"a:enter_low_power", "b:enter_low_power", "b2:enter_low_power", "clk:enter_low_power"}
	if !equal(log, want) {
		t.Fatalf("entry order = %v, want %v", log, want)
	}

	log = log[:0]
	if err := c.Notify(ExitLowPower); err != nil {
		t.Fatalf("exit: %v", err)
	}
	want = []string{"clk:exit_low_power", "b2:exit_low_power", "b:exit_low_power", "a:exit_low_power"}
	if !equal(log, want) {
		t.Fatalf("exit order = %v, want %v", log, want)
	}
}

func TestClockCallbackStaysInnermost(t *testing.T) {
	c := NewChain()
	var log []string
	// Registrations interleaved before and after the clock callback.
	register(t, c, 5, OnBoth, recorder{&log, "x"}.handler)
	register(t, c, ClockCallbackOrder, OnBoth, recorder{&log, "clk"}.handler)
	register(t, c, 200, OnBoth, recorder{&log, "y"}.handler)
	register(t, c, 0, OnBoth, recorder{&log, "z"}.handler)

	for _, o := range c.orders() {
		if o > ClockCallbackOrder {
			t.Fatalf("order %d exceeds clock callback order", o)
		}
	}

	if err := c.Notify(EnterLowPower); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if got := log[len(log)-1]; got != "clk:enter_low_power" {
		t.Fatalf("clock callback not last on entry: tail = %q (log %v)", got, log)
	}

	log = log[:0]
	if err := c.Notify(ExitLowPower); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if got := log[0]; got != "clk:exit_low_power" {
		t.Fatalf("clock callback not first on exit: head = %q (log %v)", got, log)
	}
}

func TestTypeFiltering(t *testing.T) {
	c := NewChain()
	var log []string
	register(t, c, 1, OnEnter, recorder{&log, "in"}.handler)
	register(t, c, 2, OnExit, recorder{&log, "out"}.handler)

	if err := c.Notify(EnterLowPower); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if !equal(log, []string{"in:enter_low_power"}) {
		t.Fatalf("enter log = %v", log)
	}
	log = log[:0]
	if err := c.Notify(ExitLowPower); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if !equal(log, []string{"out:exit_low_power"}) {
		t.Fatalf("exit log = %v", log)
	}
}

func TestVetoRollsBackNotifiedPrefix(t *testing.T) {
	c := NewChain()
	var log []string
	veto := errors.New("not_ready")

	register(t, c, 1, OnBoth, recorder{&log, "a"}.handler)
	register(t, c, 2, OnEnter, recorder{&log, "b"}.handler)
	register(t, c, 3, OnBoth, func(t Transition, arg any) error {
		log = append(log, "v:"+t.String())
		if t == EnterLowPower {
			return veto
		}
		return nil
	})
	register(t, c, 4, OnBoth, recorder{&log, "never"}.handler)

	err := c.Notify(EnterLowPower)
	if err != veto {
		t.Fatalf("Notify returned %v, want veto error", err)
	}
	// a and b were notified, then rolled back in reverse order. The vetoing
	// callback and everything after it see no rollback.
	want := []string{
		"a:enter_low_power", "b:enter_low_power", "v:enter_low_power",
		"b:exit_low_power", "a:exit_low_power",
	}
	if !equal(log, want) {
		t.Fatalf("veto log = %v, want %v", log, want)
	}
	if c.InLowPower() {
		t.Fatal("chain reports low power after vetoed entry")
	}
}

func TestLockVetoesBeforeAnyCallback(t *testing.T) {
	c := NewChain()
	var log []string
	register(t, c, 1, OnBoth, recorder{&log, "a"}.handler)

	c.LockLowPower()
	if err := c.Notify(EnterLowPower); err != bsperr.ErrLowPowerLocked {
		t.Fatalf("locked Notify returned %v, want ErrLowPowerLocked", err)
	}
	if len(log) != 0 {
		t.Fatalf("callbacks ran under lock: %v", log)
	}

	c.UnlockLowPower()
	if err := c.Notify(EnterLowPower); err != nil {
		t.Fatalf("unlocked Notify: %v", err)
	}
	if !c.InLowPower() {
		t.Fatal("chain not in low power after successful entry")
	}
}

func TestRegisterPastCapacity(t *testing.T) {
	c := NewChain()
	var log []string
	for i := 0; i < MaxCallbacks; i++ {
		register(t, c, uint8(i), OnBoth, recorder{&log, "cb"}.handler)
	}
	err := c.Register(Callback{Order: 99, Type: OnBoth, Handler: recorder{&log, "extra"}.handler})
	if err != bsperr.ErrChainFull {
		t.Fatalf("capacity+1 register returned %v, want ErrChainFull", err)
	}
	if c.Len() != MaxCallbacks {
		t.Fatalf("Len = %d after failed register, want %d", c.Len(), MaxCallbacks)
	}
	// The first MaxCallbacks registrations stay invokable.
	if err := c.Notify(EnterLowPower); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if len(log) != MaxCallbacks {
		t.Fatalf("invoked %d callbacks, want %d", len(log), MaxCallbacks)
	}
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unbalanced unlock")
		}
	}()
	NewChain().UnlockLowPower()
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
