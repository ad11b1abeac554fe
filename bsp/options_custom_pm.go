//go:build bsp_custom_pm_callback

package bsp

func init() { buildKnobs.customCallback = true }
