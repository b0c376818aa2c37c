//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map. The timer counts microseconds
// at 1MHz and is 64 bits wide.
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // Raw timer high word
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// hardwareUptime reads the full 64-bit microsecond counter.
// Must read high first, then low, then high again to detect rollover.
func hardwareUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

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
