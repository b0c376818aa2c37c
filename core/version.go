package core

// Firmware identity reported by the maintenance console.
const (
	FirmwareName    = "pi-key"
	FirmwareVersion = "1.0.0"
)
