// Input event detector: debounces the raw button level and classifies
// press/release patterns into Double and Long events.
package core

// Click is the classification result for one press/release group.
type Click uint8

const (
	ClickNone Click = iota
	ClickDouble
	ClickLong
)

// Detector turns raw polarity-normalized pin samples into classified
// events. Purely a classifier: no side effects beyond internal state.
//
// Debounce state is independent of classification state: a raw level is
// accepted as the new stable level only after it has been observed
// unchanged for at least the debounce interval.
type Detector struct {
	debounceMS  uint32
	doubleGapMS uint32
	longPressMS uint32

	primed      bool   // first sample adopts the level without an edge
	rawLevel    bool   // last observed raw level
	rawSince    uint32 // when rawLevel was first observed
	stableLevel bool   // debounced level

	pressActive   bool   // a stable press is in flight
	pressStart    uint32 // when the stable press began
	pendingClicks uint8  // presses counted toward a double
	firstClickAt  uint32 // time of the first pending click
	suppressLong  bool   // release of the in-flight press must not classify
}

// NewDetector builds a detector from the session configuration.
func NewDetector(cfg *Config) *Detector {
	return &Detector{
		debounceMS:  cfg.DebounceMS,
		doubleGapMS: cfg.DoublePressGapMS,
		longPressMS: cfg.LongPressMS,
	}
}

// Sample feeds one polarity-normalized level reading, taken at time now
// (milliseconds). It returns the classification resolved this tick, if
// any, and the stable edge observed this tick. The press edge is
// reported so the orchestrator can intercept it for keep-alive
// cancellation before it contributes to classification.
func (d *Detector) Sample(pressed bool, now uint32) (Click, ButtonEdge) {
	// A button already held at the very first tick records no pending
	// click and no press start; classification waits for the next edge.
	if !d.primed {
		d.primed = true
		d.rawLevel = pressed
		d.rawSince = now
		d.stableLevel = pressed
		return ClickNone, EdgeNone
	}

	click := ClickNone

	// Resolve an expired pending-click group before processing edges so
	// a stale group never absorbs a fresh press.
	if d.pendingClicks > 0 && now-d.firstClickAt > d.doubleGapMS {
		if d.pendingClicks == 2 {
			click = ClickDouble
			// The double owns the in-flight press, if any; its
			// release must not also classify as Long.
			if d.pressActive {
				d.suppressLong = true
			}
		}
		d.pendingClicks = 0
	}

	edge := d.debounce(pressed, now)
	switch edge {
	case EdgePressed:
		d.pressActive = true
		d.pressStart = now
		d.suppressLong = false
		d.pendingClicks++
		if d.pendingClicks == 1 {
			d.firstClickAt = now
		}
	case EdgeReleased:
		if d.pressActive && !d.suppressLong {
			if now-d.pressStart >= d.longPressMS {
				// A long hold supersedes any click counting in
				// progress and is never also counted as a tap.
				click = ClickLong
				d.pendingClicks = 0
			}
		}
		d.pressActive = false
		d.suppressLong = false
	}

	return click, edge
}

// Reset clears classification state so the press being processed does not
// contribute to a later Double or Long decision. Debounce state is kept:
// the stable level remains whatever the pin last settled at.
func (d *Detector) Reset() {
	d.pressActive = false
	d.pendingClicks = 0
	d.suppressLong = false
}

// ButtonEdge is a stable level transition derived once a sampled level
// has held for the debounce interval.
type ButtonEdge uint8

const (
	EdgeNone ButtonEdge = iota
	EdgePressed
	EdgeReleased
)

// debounce tracks the raw level and reports a stable edge once the level
// has held for the debounce interval.
func (d *Detector) debounce(pressed bool, now uint32) ButtonEdge {
	if pressed != d.rawLevel {
		d.rawLevel = pressed
		d.rawSince = now
		return EdgeNone
	}
	if pressed == d.stableLevel {
		return EdgeNone
	}
	if now-d.rawSince < d.debounceMS {
		return EdgeNone
	}
	d.stableLevel = pressed
	if pressed {
		return EdgePressed
	}
	return EdgeReleased
}
