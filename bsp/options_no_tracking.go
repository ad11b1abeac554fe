//go:build bsp_no_tracking

package bsp

func init() { buildKnobs.noTracking = true }
