package main

import (
	"context"
	"time"

	"boardcode-go/bsp"
	"boardcode-go/bsp/boards"
	"boardcode-go/bsp/provider"
	"boardcode-go/bus"
	"boardcode-go/services/heartbeat"
	powersvc "boardcode-go/services/power"
	"boardcode-go/types"
	"boardcode-go/x/timex"
)

// Embedded overlay baked next to the board table; empty means build
// defaults apply unchanged.
var optionOverlay []byte

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	opts, err := bsp.ApplyOverlay(bsp.DefaultOptions(), optionOverlay)
	if err != nil {
		println("bsp: bad option overlay:", err.Error())
		opts = bsp.DefaultOptions()
	}

	board := bsp.New(boards.Selected(), provider.New(), opts)
	initErr := board.Init()

	b := bus.NewBus(16)
	conn := b.NewConnection("main")
	state := types.BringupState{
		Board: board.Definition().Name,
		OK:    initErr == nil,
		TSms:  timex.NowMs(),
	}
	if initErr != nil {
		state.Error = initErr.Error()
		println("bsp: init failed:", initErr.Error())
	} else {
		println("bsp: init ok, board", state.Board)
	}
	conn.Publish(conn.NewMessage(bus.T("bsp", "state"), state, true))

	// Startup halts here on failure: services only run on a healthy board.
	if initErr != nil {
		for {
			time.Sleep(time.Hour)
		}
	}

	ctx := context.Background()
	powersvc.New(b.NewConnection("power"), board.Power()).Start(ctx)
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	select {}
}
