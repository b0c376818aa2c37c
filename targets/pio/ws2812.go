//go:build rp2040 || rp2350

// Package pio holds LED backends that offload WS2812 waveform timing to
// a PIO state machine, freeing the CPU from the bit-bang loop.
package pio

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/puckawayjeff/pi-key/core"
)

// PIO program for WS2812 waveform generation.
//
// The state machine runs at 8 MHz, so one cycle is 125 ns and one bit
// occupies 10 cycles (1.25 us). A '1' bit holds the line high for 6
// cycles then low for 4; a '0' bit holds high for 3 then low for 7.
//
// Each out shifts one data bit into X. The first jmp x-- branches on a
// one bit and falls through on a zero bit; since the decrement happens
// either way, a zero bit leaves X at 0xFFFFFFFF, so the zero path's
// jmp x-- back to the top is always taken. The next out overwrites X
// before it is tested again.
//
// When the FIFO drains, the out at the top stalls with the line low,
// which forms the >50 us reset latch between frames by itself.
func buildWS2812Program() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Out(rp2pio.OutDestX, 1).Encode(),              // 0: out x, 1        (1 cycle low)
		asm.Set(rp2pio.SetDestPins, 1).Delay(1).Encode(),  // 1: set pins, 1 [1] (2 cycles high)
		asm.Jmp(5, rp2pio.JmpXNZeroDec).Encode(),          // 2: jmp x--, 5      (1 cycle high)
		// zero bit: 3 cycles high total, drop low for the rest
		asm.Set(rp2pio.SetDestPins, 0).Delay(4).Encode(),  // 3: set pins, 0 [4] (5 cycles low)
		asm.Jmp(0, rp2pio.JmpXNZeroDec).Encode(),          // 4: jmp x--, 0      (1 cycle low, always taken)
		// one bit: extend the high phase to 6 cycles, then drop
		asm.Set(rp2pio.SetDestPins, 1).Delay(2).Encode(),  // 5: set pins, 1 [2] (3 cycles high)
		asm.Set(rp2pio.SetDestPins, 0).Delay(2).Encode(),  // 6: set pins, 0 [2] (3 cycles low)
		// .wrap
	}
}

const ws2812Origin = 0 // Load at offset 0 for correct jump addresses

// WS2812 drives a single WS2812 pixel from a PIO state machine.
type WS2812 struct {
	pio *rp2pio.PIO
	sm  rp2pio.StateMachine
	pin machine.Pin
}

// NewWS2812 returns a driver on PIO0 state machine 0.
func NewWS2812() *WS2812 {
	return &WS2812{
		pio: rp2pio.PIO0,
		sm:  rp2pio.PIO0.StateMachine(0),
	}
}

func (w *WS2812) Configure(pin uint8) error {
	w.pin = machine.Pin(pin)

	w.sm.TryClaim()

	program := buildWS2812Program()
	offset, err := w.pio.AddProgram(program, ws2812Origin)
	if err != nil {
		return err
	}

	w.pin.Configure(machine.PinConfig{Mode: w.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(w.pin, 1)

	// Shift left (MSB first), autopull after 24 bits: one FIFO word
	// carries one GRB pixel.
	cfg.SetOutShift(false, true, 24)

	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(ws2812ClkDivInt, ws2812ClkDivFrac)

	w.sm.Init(offset, cfg)

	w.sm.SetPindirsConsecutive(w.pin, 1, true)
	w.sm.SetPinsConsecutive(w.pin, 1, false)

	w.sm.SetEnabled(true)
	return nil
}

// Set queues one pixel. WS2812 wants green first, then red, then blue,
// MSB first within each byte.
func (w *WS2812) Set(c core.RGB) error {
	word := uint32(c.G)<<24 | uint32(c.R)<<16 | uint32(c.B)<<8
	for w.sm.IsTxFIFOFull() {
		// Busy wait - should be very brief
	}
	w.sm.TxPut(word)
	return nil
}
