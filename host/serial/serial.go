// Package serial opens the USB CDC port a pi-key enumerates as.
package serial

import (
	"io"
)

// Port represents a serial port. The abstraction keeps the console
// client testable against an in-memory implementation.
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. USB CDC ignores it, but the OS driver wants a value.
	Baud int

	// Read timeout in milliseconds. Reads return 0 bytes on expiry so
	// callers can poll without blocking forever.
	ReadTimeout int
}

// DefaultConfig returns the configuration for a pi-key console session.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
