//go:build rp2040 || rp2350

package board

import (
	"machine"

	"github.com/puckawayjeff/pi-key/core"
)

// rpButton reads the trigger button through a GPIO pin. Mechanical
// switches sit between pin and ground with the internal pull-up, so the
// pin reads low while pressed. Capacitive modules drive the pin high
// while touched and need no pull.
type rpButton struct {
	pin       machine.Pin
	activeLow bool
}

func (b *rpButton) Configure(pin uint8, buttonType string) error {
	b.pin = machine.Pin(pin)
	if buttonType == core.ButtonCapacitive {
		b.pin.Configure(machine.PinConfig{Mode: machine.PinInput})
		b.activeLow = false
		return nil
	}
	b.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	b.activeLow = true
	return nil
}

func (b *rpButton) Pressed() bool {
	if b.activeLow {
		return !b.pin.Get()
	}
	return b.pin.Get()
}
