package core

// ButtonDriver is the abstract button interface that core code uses.
// Implementations normalize polarity: Pressed is true while the button
// is held, regardless of wiring style.
type ButtonDriver interface {
	// Configure claims the pin and applies the pull direction matching
	// the wiring style (ButtonMechanical or ButtonCapacitive).
	Configure(pin uint8, buttonType string) error

	// Pressed reads the current polarity-normalized level.
	Pressed() bool
}

// Global singleton used by core code.
var buttonDriver ButtonDriver

// SetButtonDriver is called by target-specific code to register its driver.
func SetButtonDriver(d ButtonDriver) {
	buttonDriver = d
}

// MustButton returns the configured driver or panics if missing.
func MustButton() ButtonDriver {
	if buttonDriver == nil {
		panic("button driver not configured")
	}
	return buttonDriver
}
