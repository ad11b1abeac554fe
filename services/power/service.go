// services/power/service.go
package power

import (
	"context"

	"boardcode-go/bsp/bsperr"
	pmchain "boardcode-go/bsp/power"
	"boardcode-go/bus"
	"boardcode-go/errcode"
	"boardcode-go/types"
	"boardcode-go/x/timex"
)

// Control verbs on power/control/<verb>.
const (
	CtrlLock   = "lock"
	CtrlUnlock = "unlock"
	CtrlEnter  = "enter"
	CtrlExit   = "exit"
)

var topicCtrl = bus.Topic{"power", "control", bus.WildOne}

// Service owns the power-mode callback chain after bring-up. It serializes
// all transition requests through its loop, which is the synchronization
// the chain's single-pass model expects from the platform.
type Service struct {
	conn  *bus.Connection
	chain *pmchain.Chain
}

func New(conn *bus.Connection, chain *pmchain.Chain) *Service {
	return &Service{conn: conn, chain: chain}
}

// Start launches the service loop.
func (s *Service) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ctrlSub := s.conn.Subscribe(topicCtrl)
	defer s.conn.Unsubscribe(ctrlSub)

	s.publishState()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ctrlSub.Channel():
			if len(msg.Topic) < 3 {
				continue
			}
			verb, _ := msg.Topic[2].(string)
			s.handle(msg, verb)
		}
	}
}

func (s *Service) handle(msg *bus.Message, verb string) {
	switch verb {
	case CtrlLock:
		s.chain.LockLowPower()
		s.conn.Reply(msg, types.LockAck{OK: true, Locks: s.chain.LockCount()}, false)
	case CtrlUnlock:
		if s.chain.LockCount() == 0 {
			s.conn.Reply(msg, types.ErrorReply{OK: false, Error: string(errcode.NotReserved)}, false)
			return
		}
		s.chain.UnlockLowPower()
		s.conn.Reply(msg, types.LockAck{OK: true, Locks: s.chain.LockCount()}, false)
	case CtrlEnter:
		s.transition(msg, pmchain.EnterLowPower)
	case CtrlExit:
		s.transition(msg, pmchain.ExitLowPower)
	default:
		s.conn.Reply(msg, types.ErrorReply{OK: false, Error: string(errcode.InvalidTopic)}, false)
		return
	}
	s.publishState()
}

func (s *Service) transition(msg *bus.Message, t pmchain.Transition) {
	err := s.chain.Notify(t)
	ev := types.PowerEvent{Transition: t.String(), OK: err == nil, TSms: timex.NowMs()}
	ack := types.TransitionAck{OK: err == nil}
	if err != nil {
		code := codeOf(err)
		ev.Error = string(code)
		ack.Error = string(code)
	}
	s.conn.Publish(s.conn.NewMessage(bus.Topic{"power", "event"}, ev, false))
	s.conn.Reply(msg, ack, false)
}

func (s *Service) publishState() {
	s.conn.Publish(s.conn.NewMessage(bus.Topic{"power", "state"}, types.PowerState{
		LowPower: s.chain.InLowPower(),
		Locks:    s.chain.LockCount(),
		TSms:     timex.NowMs(),
	}, true))
}

// codeOf maps chain errors to stable bus codes. Handler veto errors fall
// through to the generic transition code.
func codeOf(err error) errcode.Code {
	switch err {
	case bsperr.ErrLowPowerLocked:
		return errcode.LowPowerLocked
	case bsperr.ErrChainFull:
		return errcode.RegistrationFailed
	default:
		return errcode.TransitionVetoed
	}
}
