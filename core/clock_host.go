//go:build !tinygo

package core

var clockMillis uint32

// getMillis returns the session clock (regular Go implementation)
func getMillis() uint32 {
	return clockMillis
}

// setMillis sets the session clock (regular Go implementation)
func setMillis(ms uint32) {
	clockMillis = ms
}
