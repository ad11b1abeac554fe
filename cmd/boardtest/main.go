// cmd/boardtest/main.go
//
// Host demo: runs the bring-up sequence against the recording driver, then
// runs it a second time to show where idempotence ends (configuration
// replays cleanly, reservations conflict).
package main

import (
	"fmt"
	"sort"

	"boardcode-go/bsp"
	"boardcode-go/bsp/boards"
	"boardcode-go/bsp/cfg"
)

func main() {
	rec := cfg.NewRecorder()
	board := bsp.New(boards.Selected(), rec, bsp.DefaultOptions())

	fmt.Println("board:", board.Definition().Name)

	err := board.Init()
	report("first init", err)
	printOps(rec)
	printReservations(board)

	rec.ResetOps()
	err = board.Init()
	report("second init", err)
	printReservations(board)
}

func report(pass string, err error) {
	if err != nil {
		fmt.Printf("%s: FAILED (%v)\n", pass, err)
		return
	}
	fmt.Printf("%s: ok\n", pass)
}

func printOps(rec *cfg.Recorder) {
	fmt.Println("applied configuration:")
	for _, op := range rec.Ops() {
		fmt.Println("  ", op)
	}
	fmt.Printf("analog supply: %d mV\n", rec.SupplyMilliV())
}

func printReservations(board *bsp.Board) {
	res := board.Resources()
	if res == nil {
		fmt.Println("resource tracking disabled")
		return
	}
	rows := res.Snapshot()
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID.String() < rows[j].ID.String() })
	fmt.Println("reservations:")
	for _, r := range rows {
		fmt.Printf("   %-12s -> %s\n", r.ID, r.Holder)
	}
}
