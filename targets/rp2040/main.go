//go:build rp2040

package main

import (
	"github.com/puckawayjeff/pi-key/targets/board"
)

func main() {
	board.Boot(board.Options{
		MCU: "rp2040",
		Now: hardwareMillis,
	})
}
