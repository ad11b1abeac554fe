//go:build !rp2040

package provider

import "boardcode-go/bsp/cfg"

// New returns the host driver: a recorder that tracks the configured end
// state instead of touching hardware. Host binaries (tests, cmd/boardtest)
// inspect it through the cfg.Recorder API.
func New() cfg.Driver { return cfg.NewRecorder() }
