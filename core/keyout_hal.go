package core

// KeyboardDriver is the abstract HID keyboard interface that playback
// writes to. Implementations translate the portable key symbols into
// whatever report format the transport needs.
type KeyboardDriver interface {
	// Ready reports whether the host is currently accepting reports.
	// Transports without a readiness signal return true and surface
	// trouble through the write calls instead.
	Ready() bool

	// TypeChar emits one printable character, applying whatever
	// shifting the character requires.
	TypeChar(ch byte) error

	// KeyDown presses a key or modifier and leaves it held.
	KeyDown(sym KeySymbol) error

	// KeyUp releases a previously pressed key or modifier.
	KeyUp(sym KeySymbol) error

	// ReleaseAll releases everything currently held. Used to recover
	// from aborted playback so no key stays stuck down.
	ReleaseAll() error
}

// Global singleton used by core code.
var keyboardDriver KeyboardDriver

// SetKeyboardDriver is called by target-specific code to register its driver.
func SetKeyboardDriver(d KeyboardDriver) {
	keyboardDriver = d
}

// MustKeyboard returns the configured driver or panics if missing.
func MustKeyboard() KeyboardDriver {
	if keyboardDriver == nil {
		panic("keyboard driver not configured")
	}
	return keyboardDriver
}
