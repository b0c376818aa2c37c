package core

// LedDriver is the abstract feedback LED interface. Color-capable
// implementations show the color as-is; single-channel ones fold it to
// a brightness.
type LedDriver interface {
	// Configure claims the pin and prepares the output.
	Configure(pin uint8) error

	// Set pushes one color to the LED.
	Set(c RGB) error
}

// Global singleton used by core code.
var ledDriver LedDriver

// SetLedDriver is called by target-specific code to register its driver.
func SetLedDriver(d LedDriver) {
	ledDriver = d
}

// MustLed returns the configured driver or panics if missing.
func MustLed() LedDriver {
	if ledDriver == nil {
		panic("LED driver not configured")
	}
	return ledDriver
}
