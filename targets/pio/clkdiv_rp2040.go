//go:build rp2040

package pio

// RP2040 runs the system clock at 125 MHz; 125 / 15.625 = 8 MHz.
// The fractional part is in 1/256ths: 0.625 * 256 = 160.
const (
	ws2812ClkDivInt  = 15
	ws2812ClkDivFrac = 160
)
