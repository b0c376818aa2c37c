//go:build rp2040 || rp2350

package board

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"github.com/puckawayjeff/pi-key/core"
)

// ws2812Led drives a single WS2812 pixel with the bit-banged driver.
// Works on any GPIO pin; the PIO backend frees the CPU from the timing
// loop but this one has no state machine to claim.
type ws2812Led struct {
	dev ws2812.Device
	buf [1]color.RGBA
}

func (l *ws2812Led) Configure(pin uint8) error {
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l.dev = ws2812.New(p)
	return nil
}

func (l *ws2812Led) Set(c core.RGB) error {
	l.buf[0] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	return l.dev.WriteColors(l.buf[:])
}
