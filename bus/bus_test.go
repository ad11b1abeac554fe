// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func expectPayload(t *testing.T, s *Subscription, want any) {
	t.Helper()
	select {
	case got := <-s.Channel():
		if got.Payload != want {
			t.Fatalf("payload = %v, want %v", got.Payload, want)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for %v on %v", want, s.Topic())
	}
}

func expectNoMessage(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case got := <-s.Channel():
		t.Fatalf("unexpected message %v on %v", got.Payload, s.Topic())
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("bsp", "state"))
	conn.Publish(conn.NewMessage(T("bsp", "state"), "ok", false))
	expectPayload(t, sub, "ok")
}

func TestRetainedMessageReplayedOnSubscribe(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("bsp", "state"), "ready", true))
	sub := conn.Subscribe(T("bsp", "state"))
	expectPayload(t, sub, "ready")

	// Nil payload clears the retained slot.
	conn.Publish(conn.NewMessage(T("bsp", "state"), nil, true))
	late := conn.Subscribe(T("bsp", "state"))
	expectNoMessage(t, late)
}

func TestSingleLevelWildcard(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("power", WildOne, "value"))
	sNo := c.Subscribe(T("power", WildOne, "event"))

	c.Publish(c.NewMessage(T("power", "vdda", "value"), "m1", false))
	expectPayload(t, s1, "m1")
	expectNoMessage(t, sNo)

	c.Publish(c.NewMessage(T("power", "vdda"), "m2", false))
	expectNoMessage(t, s1)
	expectNoMessage(t, sNo)
}

func TestMultiLevelWildcard(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	sAll := c.Subscribe(T(WildAll))
	sPower := c.Subscribe(T("power", WildAll))

	c.Publish(c.NewMessage(T("power"), "p1", false))
	expectPayload(t, sAll, "p1")
	expectPayload(t, sPower, "p1")

	c.Publish(c.NewMessage(T("power", "event", "enter"), "p2", false))
	expectPayload(t, sAll, "p2")
	expectPayload(t, sPower, "p2")

	c.Publish(c.NewMessage(T("bsp", "state"), "p3", false))
	expectPayload(t, sAll, "p3")
	expectNoMessage(t, sPower)
}

func TestIntTokens(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	s := c.Subscribe(T("clock", 2, WildOne))
	c.Publish(c.NewMessage(T("clock", 2, 0), "ch0", false))
	expectPayload(t, s, "ch0")
	c.Publish(c.NewMessage(T("clock", 3, 0), "other", false))
	expectNoMessage(t, s)
}

func TestReply(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	replies := c.Subscribe(T("reply", "lock"))
	req := &Message{Topic: T("power", "control", "lock"), ReplyTo: T("reply", "lock")}
	c.Reply(req, "done", false)
	expectPayload(t, replies, "done")

	// No ReplyTo, no delivery anywhere.
	c.Reply(&Message{Topic: T("power", "control", "lock")}, "dropped", false)
	expectNoMessage(t, replies)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	s := c.Subscribe(T("bsp", "state"))
	c.Unsubscribe(s)
	c.Publish(c.NewMessage(T("bsp", "state"), "late", false))
	if _, ok := <-s.Channel(); ok {
		t.Fatal("message delivered after unsubscribe")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")

	s := c.Subscribe(T("hb"))
	for i := 0; i < 4; i++ {
		c.Publish(c.NewMessage(T("hb"), i, false))
	}
	expectPayload(t, s, 2)
	expectPayload(t, s, 3)
}
