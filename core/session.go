// Session is the device orchestrator: one cooperative loop binding the
// detector, the keep-alive scheduler and the LED controller, and the
// only writer to the keystroke sink.
package core

// Session owns all mutable runtime state. Both macro sources are
// compiled once at construction and never re-parsed.
type Session struct {
	cfg       *Config
	detector  *Detector
	keepAlive *KeepAlive
	led       *LedController
	button    ButtonDriver
	kb        KeyboardDriver
	ledOut    LedDriver
	macro     ParsedMacro

	sleep   func(ms uint32)
	faulted bool
}

// sinkPollMS is the poll step while waiting for the keystroke sink.
const sinkPollMS = 10

// NewSession wires the runtime together from an already-normalized
// config and the registered drivers. sleep performs the bounded
// keystroke hold delays; nil means no delay (host tests).
func NewSession(cfg *Config, rng Rand, sleep func(ms uint32)) *Session {
	cfg.normalize()
	if sleep == nil {
		sleep = func(uint32) {}
	}
	return &Session{
		cfg:       cfg,
		detector:  NewDetector(cfg),
		keepAlive: NewKeepAlive(cfg, Compile(cfg.KeepAliveMacro), rng),
		led:       NewLedController(cfg),
		button:    MustButton(),
		kb:        MustKeyboard(),
		ledOut:    MustLed(),
		macro:     Compile(cfg.Macro),
		sleep:     sleep,
	}
}

// Faulted reports whether the last playback gave up on an unready sink.
// It clears on the next successful playback.
func (s *Session) Faulted() bool { return s.faulted }

// KeepAliveActive reports whether the anti-idle scheduler is armed.
func (s *Session) KeepAliveActive() bool { return s.keepAlive.Active() }

// Tick runs one iteration of the control loop: sample and classify the
// button, route the resulting event, advance the scheduler, advance the
// LED. Within one tick classification resolves before the scheduler, so
// a cancel suppresses that tick's keep-alive emission.
func (s *Session) Tick() {
	now := Millis()

	click, edge := s.detector.Sample(s.button.Pressed(), now)
	switch edge {
	case EdgePressed:
		RecordEvent(EvtPress, now, 0)
	case EdgeReleased:
		RecordEvent(EvtRelease, now, 0)
	}

	if edge == EdgePressed && s.keepAlive.Active() {
		// The cancel press is consumed here; resetting the detector
		// keeps it from counting toward a later Double or Long.
		s.detector.Reset()
		s.keepAlive.Cancel()
		s.led.Enter(LedDoubleFlash, now)
		RecordEvent(EvtCancel, now, 0)
		DebugPrintln("keep-alive cancelled by press")
		click = ClickNone
	}

	switch click {
	case ClickDouble:
		RecordEvent(EvtDouble, now, 0)
		DebugPrintln("double press: playing macro")
		s.playMacro()
	case ClickLong:
		if !s.keepAlive.Active() {
			RecordEvent(EvtLong, now, 0)
			DebugPrintln("long press: keep-alive armed")
			s.keepAlive.Activate(now)
			s.led.Enter(LedBreathing, now)
		}
	}

	if tok, due := s.keepAlive.Tick(now); due {
		s.playKeepAlive(tok)
	}

	color, changed := s.led.Tick(Millis())
	if changed {
		if err := s.ledOut.Set(color); err != nil {
			DebugPrintln("led write failed")
		}
	}
}

// playMacro replays the whole double-press macro, then flashes. The
// flash timer starts after playback so the feedback stays visible for
// its full duration.
func (s *Session) playMacro() {
	if !s.waitSink() {
		s.fault()
		return
	}
	for _, tok := range s.macro {
		if err := s.emit(tok); err != nil {
			s.kb.ReleaseAll()
			s.fault()
			return
		}
		s.sleep(s.cfg.InterKeyMS)
	}
	s.faulted = false
	done := Millis()
	s.led.Enter(LedFlash, done)
	RecordEvent(EvtMacro, done, uint32(len(s.macro)))
}

// playKeepAlive emits one scheduled action. A success while the LED is
// showing a fault restores the breathing pattern.
func (s *Session) playKeepAlive(tok MacroToken) {
	if !s.waitSink() {
		s.fault()
		return
	}
	if err := s.emit(tok); err != nil {
		s.kb.ReleaseAll()
		s.fault()
		return
	}
	now := Millis()
	if s.faulted {
		s.faulted = false
		s.led.Enter(LedBreathing, now)
	}
	RecordEvent(EvtKeepAlive, now, s.keepAlive.NextIn(now))
}

// emit replays a single compiled action.
func (s *Session) emit(tok MacroToken) error {
	if tok.Kind == TokenLiteral {
		return s.emitLiteral(tok.Char)
	}
	return s.emitChord(tok.Mods, tok.Key)
}

// emitLiteral types one character. Newline and tab map to their keys;
// other control bytes are dropped.
func (s *Session) emitLiteral(ch byte) error {
	switch ch {
	case '\n':
		return s.emitChord(ModNone, SymEnter)
	case '\t':
		return s.emitChord(ModNone, SymTab)
	}
	if ch < 0x20 || ch > 0x7E {
		return nil
	}
	return s.kb.TypeChar(ch)
}

// emitChord presses the modifiers then the key, holds, and releases in
// reverse order so the modifiers outlive the key.
func (s *Session) emitChord(mods Modifier, key KeySymbol) error {
	syms := mods.ModifierSymbols()
	for _, m := range syms {
		if err := s.kb.KeyDown(m); err != nil {
			return err
		}
	}
	if err := s.kb.KeyDown(key); err != nil {
		return err
	}
	s.sleep(s.cfg.ChordHoldMS)
	if err := s.kb.KeyUp(key); err != nil {
		return err
	}
	for i := len(syms) - 1; i >= 0; i-- {
		if err := s.kb.KeyUp(syms[i]); err != nil {
			return err
		}
	}
	return nil
}

// waitSink polls sink readiness, sleeping between polls, up to the
// configured bound. An unready sink past the bound is an operational
// fault, not a reason to hang the loop.
func (s *Session) waitSink() bool {
	if s.kb.Ready() {
		return true
	}
	for waited := uint32(0); waited < s.cfg.SinkWaitMS; waited += sinkPollMS {
		s.sleep(sinkPollMS)
		if s.kb.Ready() {
			return true
		}
	}
	return false
}

func (s *Session) fault() {
	now := Millis()
	s.faulted = true
	s.led.Enter(LedFault, now)
	RecordEvent(EvtFault, now, 0)
	DebugPrintln("keystroke sink unready, playback abandoned")
}
