package core

// The session clock is a free-running millisecond counter. Target code
// advances it from the hardware timer each loop iteration; host tests
// drive it directly. It wraps after ~49.7 days, which every consumer
// tolerates by comparing durations, never absolute values.

// Millis returns the current session clock in milliseconds.
func Millis() uint32 {
	return getMillis()
}

// SetMillis sets the session clock (hardware integration and tests).
func SetMillis(ms uint32) {
	setMillis(ms)
}
