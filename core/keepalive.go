package core

// Rand is the entropy source for keep-alive intervals. math/rand/v2's
// *Rand satisfies it; tests inject fixed sequences.
type Rand interface {
	Uint32() uint32
}

// KeepAlive replays a parsed action list one action per fire, at
// randomized intervals, while active. It emits at most one action per
// tick and stays silent until activated.
type KeepAlive struct {
	minMS uint32
	maxMS uint32
	rng   Rand
	macro ParsedMacro

	active   bool
	cursor   int
	nextFire uint32
}

// NewKeepAlive builds a scheduler over an already-compiled action list.
// The config's interval bounds are normalized so min <= max holds here.
func NewKeepAlive(cfg *Config, macro ParsedMacro, rng Rand) *KeepAlive {
	return &KeepAlive{
		minMS: cfg.KeepAliveMinMS,
		maxMS: cfg.KeepAliveMaxMS,
		rng:   rng,
		macro: macro,
	}
}

// Active reports whether the scheduler is armed.
func (k *KeepAlive) Active() bool { return k.active }

// Activate arms the scheduler: the replay cursor rewinds to the start
// and the first randomized deadline is drawn. Activating while already
// active restarts both.
func (k *KeepAlive) Activate(now uint32) {
	k.active = true
	k.cursor = 0
	k.nextFire = now + k.interval()
}

// Cancel disarms the scheduler. A pending fire is discarded with no
// emission, so cancellation is effective on the very next tick.
func (k *KeepAlive) Cancel() {
	k.active = false
}

// Tick returns the action due this tick, if any. On a fire the cursor
// advances cyclically through the action list and the next deadline is
// drawn immediately, so late ticks never burst.
func (k *KeepAlive) Tick(now uint32) (MacroToken, bool) {
	if !k.active || int32(now-k.nextFire) < 0 {
		return MacroToken{}, false
	}
	k.nextFire = now + k.interval()
	if len(k.macro) == 0 {
		return MacroToken{}, false
	}
	tok := k.macro[k.cursor]
	k.cursor = (k.cursor + 1) % len(k.macro)
	return tok, true
}

// NextIn returns milliseconds until the pending deadline, for status
// reporting. Zero when idle or already due.
func (k *KeepAlive) NextIn(now uint32) uint32 {
	if !k.active {
		return 0
	}
	d := int32(k.nextFire - now)
	if d < 0 {
		return 0
	}
	return uint32(d)
}

// interval draws a uniform delay in [minMS, maxMS].
func (k *KeepAlive) interval() uint32 {
	span := k.maxMS - k.minMS + 1
	return k.minMS + k.rng.Uint32()%span
}
