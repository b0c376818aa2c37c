//go:build tinygo

package core

import "sync/atomic"

var clockMillisValue uint32

// getMillis returns the session clock. Atomic because USB interrupt
// handlers may observe it while the main loop stores.
func getMillis() uint32 {
	return atomic.LoadUint32(&clockMillisValue)
}

// setMillis sets the session clock
func setMillis(ms uint32) {
	atomic.StoreUint32(&clockMillisValue, ms)
}
