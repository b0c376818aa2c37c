//go:build rp2040 || rp2350

package board

import (
	"machine"

	"github.com/puckawayjeff/pi-key/core"
)

// pwmPeripheral captures the TinyGo PWM group methods we use, since the
// concrete machine.pwmGroup type is unexported.
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// pwmLed drives a plain LED with PWM brightness. Color is collapsed to
// the brightest channel, so state colors become distinct duty levels.
type pwmLed struct {
	pwm     pwmPeripheral
	channel uint8
}

// pwmPeriodNS gives a 1 kHz carrier, well above flicker.
const pwmPeriodNS = 1_000_000

func (l *pwmLed) Configure(pin uint8) error {
	p := machine.Pin(pin)
	pwm := pwmForPin(p)
	if err := pwm.Configure(machine.PWMConfig{Period: pwmPeriodNS}); err != nil {
		return err
	}
	ch, err := pwm.Channel(p)
	if err != nil {
		return err
	}
	l.pwm = pwm
	l.channel = ch
	return nil
}

func (l *pwmLed) Set(c core.RGB) error {
	level := uint32(c.Brightness())
	l.pwm.Set(l.channel, level*l.pwm.Top()/255)
	return nil
}

// pwmForPin returns the PWM slice serving a pin. On RP2040 and RP2350
// each slice serves two adjacent pins, slice = (pin >> 1) & 0x7, so the
// mask keeps the switch exhaustive.
func pwmForPin(pin machine.Pin) pwmPeripheral {
	switch (uint8(pin) >> 1) & 0x7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
