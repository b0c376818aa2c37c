//go:build rp2040 || rp2350

package board

import (
	"github.com/puckawayjeff/pi-key/core"
	"github.com/puckawayjeff/pi-key/targets/pio"
)

// newLedDriver picks the feedback LED backend from config. Unknown
// values already collapsed to ws2812 during config load.
func newLedDriver(kind string) core.LedDriver {
	switch kind {
	case core.LedDriverWS2812PIO:
		return pio.NewWS2812()
	case core.LedDriverPWM:
		return &pwmLed{}
	default:
		return &ws2812Led{}
	}
}
