//go:build bsp_no_lp_lock

package bsp

func init() { buildKnobs.noLowPowerLock = true }
