package types

// ------------------------
// Bring-up / power bus payloads
// ------------------------

// Retained value: bsp/state
type BringupState struct {
	Board string `json:"board"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"` // stable errcode string
	TSms  int64  `json:"ts_ms"`
}

// Retained value: power/state
type PowerState struct {
	LowPower bool  `json:"low_power"`
	Locks    int   `json:"locks"`
	TSms     int64 `json:"ts_ms"`
}

// Event: power/event (non-retained)
type PowerEvent struct {
	Transition string `json:"transition"` // "enter_low_power" | "exit_low_power"
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	TSms       int64  `json:"ts_ms"`
}

// Replies to power control verbs.
type LockAck struct {
	OK    bool `json:"ok"`
	Locks int  `json:"locks"`
}

type TransitionAck struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
