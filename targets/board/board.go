//go:build rp2040 || rp2350

// Package board wires the hardware-agnostic engine to RP2040/RP2350
// class boards: USB identity, serial console, driver registration, the
// boot-time mode gate and the run loop. The per-chip mains only supply
// the pieces that differ between the two chips.
package board

import (
	"machine"
	"math/rand/v2"
	"time"

	"github.com/puckawayjeff/pi-key/console"
	"github.com/puckawayjeff/pi-key/core"
)

// Options carries the chip specifics a target main provides.
type Options struct {
	MCU string        // chip name reported on the console banner
	Now func() uint32 // hardware millisecond reader
}

const (
	// bootGateMS is how long the button must stay pressed at power-up
	// to drop into the maintenance console instead of the run loop.
	bootGateMS = 50

	// tickMS is the run-loop cadence. Detector and LED timing assume
	// roughly this period between samples.
	tickMS = 10
)

// Boot brings the board up and never returns. Order matters: the USB
// identity patch must land before the host reads the device descriptor,
// and drivers must be registered before the session constructor asks
// for them.
func Boot(opts Options) {
	// Clear any watchdog state a previous reset left running.
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})

	cfg, err := core.LoadConfig(defaultConfigJSON)
	if err != nil {
		cfg = core.DefaultConfig()
	}

	applyUSBIdentity(cfg)
	initSerial()

	core.SetMillis(opts.Now())
	core.SetDebugWriter(writeLine)

	core.SetButtonDriver(&rpButton{})
	core.SetKeyboardDriver(newUSBKeyboard())
	core.SetLedDriver(newLedDriver(cfg.LedDriver))

	if err := core.MustButton().Configure(cfg.ButtonPin, cfg.ButtonType); err != nil {
		core.DebugPrintln("button configure failed")
	}
	if err := core.MustLed().Configure(cfg.LedPin); err != nil {
		core.DebugPrintln("led configure failed")
	}

	con := console.New(cfg, writeLine)
	con.Register("reset", "reset", func(args []string) error {
		resetBoard()
		return nil
	})

	if buttonHeldAtBoot(opts.Now) {
		banner(opts.MCU)
		consoleLoop(con, opts.Now)
	}

	runLoop(cfg, con, opts.Now)
}

// initSerial configures the USB CDC console. On these boards
// machine.Serial is the USB CDC endpoint, not a hardware UART.
func initSerial() {
	machine.Serial.Configure(machine.UARTConfig{})
}

// buttonHeldAtBoot samples the button over the gate window. Any release
// during the window selects the run loop.
func buttonHeldAtBoot(now func() uint32) bool {
	btn := core.MustButton()
	if !btn.Pressed() {
		return false
	}
	deadline := now() + bootGateMS
	for int32(now()-deadline) < 0 {
		if !btn.Pressed() {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
	return true
}

func banner(mcu string) {
	writeLine(core.FirmwareName + " " + core.FirmwareVersion + " (" + mcu + ") maintenance console")
	writeLine("type 'help' for commands, 'run' to start the device")
}

// consoleLoop services the maintenance console until a run command
// arrives. No unsolicited output here: after the banner, every line the
// device emits belongs to a command response.
func consoleLoop(con *console.Console, now func() uint32) {
	for !con.RunRequested() {
		core.SetMillis(now())
		pumpSerial(con)
		time.Sleep(time.Millisecond)
	}
}

// runLoop drives the session forever. The console stays reachable so
// diagnostics (info, events, debug) work on a running device; setting
// values takes effect after a reset.
func runLoop(cfg *core.Config, con *console.Console, now func() uint32) {
	boot := uint64(now())
	rng := rand.New(rand.NewPCG(boot, boot^0x9E3779B97F4A7C15))
	session := core.NewSession(cfg, rng, func(ms uint32) {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	})

	for {
		// Recover from panics in the loop body so a driver fault
		// cannot brick the keyboard.
		func() {
			defer func() {
				if r := recover(); r != nil {
					core.DebugPrintln("tick panic recovered")
				}
			}()

			core.SetMillis(now())
			pumpSerial(con)
			session.Tick()
		}()

		time.Sleep(tickMS * time.Millisecond)
	}
}

// pumpSerial drains pending console input without blocking the tick.
func pumpSerial(con *console.Console) {
	for machine.Serial.Buffered() > 0 {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			return
		}
		con.Feed(b)
	}
}

var crlf = []byte("\r\n")

// writeLine emits one console/debug line over the serial port, handling
// partial writes.
func writeLine(s string) {
	writeAll([]byte(s))
	writeAll(crlf)
}

func writeAll(data []byte) {
	for len(data) > 0 {
		n, err := machine.Serial.Write(data)
		if err != nil {
			return
		}
		data = data[n:]
	}
}

// resetBoard reboots through the watchdog. This also re-enumerates USB,
// so config pushed over the console takes effect cleanly.
func resetBoard() {
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1}); err != nil {
		return
	}
	if err := machine.Watchdog.Start(); err != nil {
		return
	}
	for {
		time.Sleep(time.Millisecond)
	}
}
