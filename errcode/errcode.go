package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Bring-up / resource tracking
	ManagerInitFailed Code = "resource_manager_init_failed"
	AlreadyReserved   Code = "already_reserved"
	NotReserved       Code = "not_reserved"

	// Power-mode chain
	RegistrationFailed Code = "registration_failed"
	LowPowerLocked     Code = "low_power_locked"
	TransitionVetoed   Code = "transition_vetoed"

	// Config / boards
	UnknownBoard   Code = "unknown_board"
	InvalidOverlay Code = "invalid_overlay"

	InvalidTopic Code = "invalid_topic"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
