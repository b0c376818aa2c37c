//go:build rp2350

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2350 Timer peripheral memory map. TIMER0 sits at a different base
// address than the RP2040 timer and the raw read registers moved:
//
//	timeRawH @ 0x24 - Raw read from upper 32b
//	timeRawL @ 0x28 - Raw read from lower 32b
//
// The counter still runs at 1MHz and is 64 bits wide.
const (
	timerBase     = 0x400B0000       // RP2350 TIMER0 base address
	timerTimeRawH = timerBase + 0x24 // Raw timer high (no latching)
	timerTimeRawL = timerBase + 0x28 // Raw timer low (no latching)
)

var (
	timerRawH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTimeRawH)))
	timerRawL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTimeRawL)))
)

// hardwareUptime reads the full 64-bit microsecond counter.
// Must read high first, then low, then high again to detect rollover.
func hardwareUptime() uint64 {
	for {
		high1 := timerRawH.Get()
		low := timerRawL.Get()
		high2 := timerRawH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
		// Retry, rollover happened during the read.
	}
}

// hardwareMillis reports uptime in milliseconds. The 32-bit result
// wraps after ~49.7 days; consumers compare with wrap-safe math.
func hardwareMillis() uint32 {
	return uint32(hardwareUptime() / 1000)
}
