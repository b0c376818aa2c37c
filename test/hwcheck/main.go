//go:build rp2040 || rp2350

package main

// Hardware bring-up check for pi-key boards. Cycles the feedback LED
// through the state colors, then echoes classified button activity over
// serial. Flash this before the firmware to verify wiring and button
// polarity without involving the USB keyboard endpoint.

import (
	"machine"
	"time"

	"github.com/puckawayjeff/pi-key/core"
	"github.com/puckawayjeff/pi-key/targets/pio"
)

const (
	buttonPin = machine.Pin(29)
	ledPin    = uint8(16)
)

var colorTests = []struct {
	name  string
	color core.RGB
}{
	{"purple (macro)", core.ColorPurple},
	{"amber (keep-alive)", core.ColorAmber},
	{"red (cancel)", core.ColorRed},
	{"off", core.RGB{}},
}

func main() {
	// Give the USB serial monitor time to attach.
	time.Sleep(3 * time.Second)

	println("=== pi-key hardware check ===")
	println("LED: GP16 (WS2812 via PIO), button: GP29 (pull-up)")

	led := pio.NewWS2812()
	if err := led.Configure(ledPin); err != nil {
		println("LED init error:", err.Error())
	}

	println("Cycling LED colors...")
	for cycle := 0; cycle < 3; cycle++ {
		for _, test := range colorTests {
			println("  LED:", test.name)
			led.Set(test.color)
			time.Sleep(time.Second)
		}
	}

	buttonPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	println("Watching the button - press, double-press, hold...")

	det := core.NewDetector(core.DefaultConfig())
	start := time.Now()
	pressColor := core.RGB{G: 64}

	for {
		now := uint32(time.Since(start).Milliseconds())
		click, edge := det.Sample(!buttonPin.Get(), now)

		switch edge {
		case core.EdgePressed:
			println("pressed t=", now)
			led.Set(pressColor)
		case core.EdgeReleased:
			println("released t=", now)
			led.Set(core.RGB{})
		}

		switch click {
		case core.ClickDouble:
			println("  -> DOUBLE")
		case core.ClickLong:
			println("  -> LONG")
		}

		time.Sleep(5 * time.Millisecond)
	}
}
