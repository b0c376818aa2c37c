//go:build rp2350

package main

import (
	"github.com/puckawayjeff/pi-key/targets/board"
)

func main() {
	board.Boot(board.Options{
		MCU: "rp2350",
		Now: hardwareMillis,
	})
}
