// bsp/hwres/hwres.go
package hwres

import (
	"sync"

	"boardcode-go/bsp/bsperr"
	"boardcode-go/x/strx"
)

// Kind classifies an exclusively ownable hardware unit.
type Kind uint8

const (
	KindClock Kind = iota // peripheral clock divider
	KindGPIO
	KindI2C
	KindUART
	KindTimer
	KindDMA
)

func (k Kind) String() string {
	switch k {
	case KindClock:
		return "clock"
	case KindGPIO:
		return "gpio"
	case KindI2C:
		return "i2c"
	case KindUART:
		return "uart"
	case KindTimer:
		return "timer"
	case KindDMA:
		return "dma"
	}
	return "unknown"
}

// BlockID names one physical, non-shareable hardware unit: a kind plus the
// block instance, plus the channel for blocks that are subdivided (the
// peripheral clock dividers are banks of channels). Compared by value.
type BlockID struct {
	Kind    Kind
	Block   uint8
	Channel uint8
}

func (id BlockID) String() string {
	return id.Kind.String() + "/" + strx.Utoa(uint(id.Block)) + "." + strx.Utoa(uint(id.Channel))
}

// Reservation is one row of the registry snapshot.
type Reservation struct {
	ID     BlockID
	Holder string
}

// Manager tracks which hardware blocks are currently reserved and by whom.
//
// Reservation is bookkeeping only: the hardware is not physically exclusive
// at this layer. The registry is populated during the single bring-up pass;
// callers that reserve or release after initialization are serialized by the
// surrounding platform, not by this package. The mutex covers the map for
// the benefit of host builds and tests.
type Manager struct {
	mu   sync.Mutex
	held map[BlockID]string
}

// NewManager initializes the registry backing store. The error return exists
// for providers whose store is a fixed pool that can fail to allocate; the
// map-backed store cannot.
func NewManager() (*Manager, error) {
	return &Manager{held: make(map[BlockID]string)}, nil
}

// Reserve records exclusive ownership of id by holder. Any currently held
// block fails with ErrAlreadyReserved, including the same holder reserving
// twice: a double reserve is a configuration conflict, not a refresh.
func (m *Manager) Reserve(id BlockID, holder string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, inUse := m.held[id]; inUse {
		return bsperr.ErrAlreadyReserved
	}
	m.held[id] = holder
	return nil
}

// Release removes a reservation. Releasing an unheld block is an error so
// teardown bugs surface instead of masking double releases.
func (m *Manager) Release(id BlockID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, inUse := m.held[id]; !inUse {
		return bsperr.ErrNotReserved
	}
	delete(m.held, id)
	return nil
}

// IsReserved reports whether id is currently held.
func (m *Manager) IsReserved(id BlockID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, inUse := m.held[id]
	return inUse
}

// Holder returns the holder tag for id, if reserved.
func (m *Manager) Holder(id BlockID) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.held[id]
	return h, ok
}

// Len returns the number of active reservations.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.held)
}

// Snapshot returns a copy of the reservation table for diagnostics.
func (m *Manager) Snapshot() []Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Reservation, 0, len(m.held))
	for id, h := range m.held {
		out = append(out, Reservation{ID: id, Holder: h})
	}
	return out
}
