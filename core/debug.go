package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// InputEvent captures one detector or scheduler event for post-mortem
// inspection from the maintenance console.
type InputEvent struct {
	Kind  uint8  // Event kind code
	Clock uint32 // Session clock at event (ms)
	Value uint32 // Context-dependent value
}

// Event kind codes
const (
	EvtPress     = 1 // stable press edge accepted
	EvtRelease   = 2 // stable release edge accepted
	EvtDouble    = 3 // double press classified
	EvtLong      = 4 // long press classified
	EvtCancel    = 5 // keep-alive cancelled by press
	EvtKeepAlive = 6 // keep-alive action fired (value = ms to next)
	EvtMacro     = 7 // macro playback completed (value = token count)
	EvtFault     = 8 // playback gave up on an unready host
)

const (
	// EventRingSize keeps the most recent events for the console dump.
	EventRingSize = 32
)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active.
	// Disabled by default; the console toggles it at runtime.
	debugEnabled bool = false

	// Event capture ring (non-blocking, always on)
	eventRing     [EventRingSize]InputEvent
	eventRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function.
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures an input event in the ring buffer.
// Always non-blocking; the oldest entry is overwritten.
func RecordEvent(kind uint8, clock, value uint32) {
	idx := eventRingHead
	eventRing[idx] = InputEvent{Kind: kind, Clock: clock, Value: value}
	eventRingHead = (idx + 1) % EventRingSize
}

// DumpEventRing emits the captured events oldest-first through the given
// writer. Empty slots are skipped.
func DumpEventRing(emit DebugWriter) {
	if emit == nil {
		return
	}
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		idx := (start + i) % EventRingSize
		evt := &eventRing[idx]
		if evt.Kind == 0 {
			continue
		}
		emit(eventName(evt.Kind) +
			" t=" + utoa(evt.Clock) +
			" v=" + utoa(evt.Value))
	}
}

// ClearEventRing clears the capture buffer.
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = InputEvent{}
	}
	eventRingHead = 0
}

func eventName(kind uint8) string {
	switch kind {
	case EvtPress:
		return "PRESS"
	case EvtRelease:
		return "RELEASE"
	case EvtDouble:
		return "DOUBLE"
	case EvtLong:
		return "LONG"
	case EvtCancel:
		return "CANCEL"
	case EvtKeepAlive:
		return "KEEPALIVE"
	case EvtMacro:
		return "MACRO"
	case EvtFault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}
