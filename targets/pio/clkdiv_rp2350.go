//go:build rp2350

package pio

// RP2350 runs the system clock at 150 MHz; 150 / 18.75 = 8 MHz.
// The fractional part is in 1/256ths: 0.75 * 256 = 192.
const (
	ws2812ClkDivInt  = 18
	ws2812ClkDivFrac = 192
)
