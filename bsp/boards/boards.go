// bsp/boards/boards.go
package boards

import (
	"sync"

	"boardcode-go/bsp/cfg"
	"boardcode-go/bsp/hwres"
)

// Definition bundles everything the sequencer needs for one board: the
// generated configuration table, the analog supply target, and the blocks
// the board claims for itself so application code cannot double-allocate
// them.
type Definition struct {
	Name         string
	Table        cfg.Table
	SupplyMilliV int32
	// DefaultBlocks are reserved on behalf of board-level logic during
	// bring-up.
	DefaultBlocks []hwres.BlockID
}

var (
	mu   sync.RWMutex
	defs = map[string]Definition{}
)

// Register installs a board definition. It panics on duplicate registration
// to catch mistakes at start-up.
func Register(d Definition) {
	mu.Lock()
	defer mu.Unlock()
	if d.Name == "" {
		panic("boards: empty board name")
	}
	if _, exists := defs[d.Name]; exists {
		panic("boards: board already registered: " + d.Name)
	}
	defs[d.Name] = d
}

// ByName looks up a registered board.
func ByName(name string) (Definition, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := defs[name]
	return d, ok
}

// Selected returns the board chosen at build time.
func Selected() Definition {
	d, ok := ByName(selectedName)
	if !ok {
		panic("boards: selected board not registered: " + selectedName)
	}
	return d
}
