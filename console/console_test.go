package console

import (
	"strings"
	"testing"

	"github.com/puckawayjeff/pi-key/core"
)

// consoleFixture collects console output lines for assertions.
type consoleFixture struct {
	c     *Console
	cfg   *core.Config
	lines []string
}

func newConsoleFixture() *consoleFixture {
	f := &consoleFixture{cfg: core.DefaultConfig()}
	f.c = New(f.cfg, func(s string) { f.lines = append(f.lines, s) })
	return f
}

func (f *consoleFixture) reset() {
	f.lines = f.lines[:0]
}

func (f *consoleFixture) last() string {
	if len(f.lines) == 0 {
		return ""
	}
	return f.lines[len(f.lines)-1]
}

func TestSetAndGet(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute("set debounce_interval 40")
	if f.last() != "ok" {
		t.Fatalf("Expected ok after set, got %q", f.last())
	}
	if f.cfg.DebounceMS != 40 {
		t.Errorf("Expected debounce_interval 40, got %d", f.cfg.DebounceMS)
	}

	f.reset()
	f.c.Execute("get debounce_interval")
	if len(f.lines) != 2 {
		t.Fatalf("Expected 2 output lines, got %d: %v", len(f.lines), f.lines)
	}
	if f.lines[0] != "debounce_interval = 40" {
		t.Errorf("Expected value line, got %q", f.lines[0])
	}
	if f.lines[1] != "ok" {
		t.Errorf("Expected ok, got %q", f.lines[1])
	}
}

func TestGetUnknownSetting(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute("get warp_drive")
	if f.last() != "error: unknown setting 'warp_drive'" {
		t.Errorf("Expected unknown setting error, got %q", f.last())
	}
}

func TestSetQuotedValue(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute(`set macro "Hello{ENTER} world"`)
	if f.last() != "ok" {
		t.Fatalf("Expected ok, got %q", f.last())
	}
	if f.cfg.Macro != "Hello{ENTER} world" {
		t.Errorf("Expected quoted value preserved, got %q", f.cfg.Macro)
	}
}

func TestSetWithCRCTrailer(t *testing.T) {
	f := newConsoleFixture()

	payload := "Hi{CTRL+ALT+DELETE} there"
	line := "set macro " + QuoteArg(payload) + " " + CRCArg(payload)
	t.Logf("pushing: %s", line)

	f.c.Execute(line)
	if f.last() != "ok" {
		t.Fatalf("Expected ok, got %q", f.last())
	}
	if f.cfg.Macro != payload {
		t.Errorf("Expected macro %q, got %q", payload, f.cfg.Macro)
	}
}

func TestSetWithBadCRC(t *testing.T) {
	f := newConsoleFixture()

	bad := CRC16([]byte("hello")) ^ 0xFFFF
	f.c.Execute("set macro hello crc=" + formatHex4(bad))
	if !strings.HasPrefix(f.last(), "error: crc mismatch") {
		t.Errorf("Expected crc mismatch error, got %q", f.last())
	}
	if f.cfg.Macro != "fallback-text" {
		t.Errorf("Expected macro untouched after bad crc, got %q", f.cfg.Macro)
	}
}

func TestSetRejectsMalformedTrailer(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute("set macro hello 1234")
	if !strings.HasPrefix(f.last(), "error: expected crc=HHHH trailer") {
		t.Errorf("Expected trailer error, got %q", f.last())
	}
}

func TestUnknownCommand(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute("bogus 1 2 3")
	if f.last() != "error: unknown command 'bogus' (try help)" {
		t.Errorf("Expected unknown command error, got %q", f.last())
	}
}

func TestBlankLineIgnored(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute("")
	f.c.Execute("   ")
	if len(f.lines) != 0 {
		t.Errorf("Expected no output for blank lines, got %v", f.lines)
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute("help")
	// 8 builtin usages plus the ok acknowledgement.
	if len(f.lines) != 9 {
		t.Errorf("Expected 9 lines, got %d: %v", len(f.lines), f.lines)
	}
	found := false
	for _, line := range f.lines {
		if line == "set <key> <value> [crc=HHHH]" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected set usage in help output, got %v", f.lines)
	}
}

func TestCheckMacro(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute(`check "Hi{CTRL+C}"`)
	want := []string{
		`0: literal "H"`,
		`1: literal "i"`,
		"2: chord ctrl+c",
		"tokens: 3",
		"ok",
	}
	if len(f.lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(f.lines), f.lines)
	}
	for i := range want {
		if f.lines[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], f.lines[i])
		}
	}
}

func TestCheckJoinsUnquotedWords(t *testing.T) {
	f := newConsoleFixture()

	f.c.Execute("check hello world")
	if len(f.lines) < 2 {
		t.Fatalf("Expected output, got %v", f.lines)
	}
	// "hello world" is 11 literal tokens.
	if f.lines[len(f.lines)-2] != "tokens: 11" {
		t.Errorf("Expected tokens: 11, got %q", f.lines[len(f.lines)-2])
	}
}

func TestEventsDumpAndClear(t *testing.T) {
	f := newConsoleFixture()
	core.ClearEventRing()
	core.RecordEvent(core.EvtPress, 100, 0)
	core.RecordEvent(core.EvtDouble, 250, 2)

	f.c.Execute("events")
	want := []string{
		"PRESS t=100 v=0",
		"DOUBLE t=250 v=2",
		"ok",
	}
	if len(f.lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(f.lines), f.lines)
	}
	for i := range want {
		if f.lines[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], f.lines[i])
		}
	}

	f.reset()
	f.c.Execute("events clear")
	if f.last() != "ok" {
		t.Errorf("Expected ok after clear, got %q", f.last())
	}

	f.reset()
	f.c.Execute("events")
	if len(f.lines) != 1 || f.lines[0] != "ok" {
		t.Errorf("Expected empty dump after clear, got %v", f.lines)
	}
}

func TestDebugToggle(t *testing.T) {
	f := newConsoleFixture()
	defer core.SetDebugEnabled(false)

	f.c.Execute("debug on")
	if !core.IsDebugEnabled() {
		t.Errorf("Expected debug enabled")
	}

	f.c.Execute("debug off")
	if core.IsDebugEnabled() {
		t.Errorf("Expected debug disabled")
	}

	f.reset()
	f.c.Execute("debug sideways")
	if f.last() != "error: usage: debug on|off" {
		t.Errorf("Expected usage error, got %q", f.last())
	}
}

func TestRunRequested(t *testing.T) {
	f := newConsoleFixture()

	if f.c.RunRequested() {
		t.Fatalf("Expected run not requested initially")
	}
	f.c.Execute("run")
	if !f.c.RunRequested() {
		t.Errorf("Expected run requested after command")
	}
	if f.last() != "ok" {
		t.Errorf("Expected ok, got %q", f.last())
	}
}

func TestFeedAssemblesLine(t *testing.T) {
	f := newConsoleFixture()

	for _, b := range []byte("get macro\r\n") {
		f.c.Feed(b)
	}
	if len(f.lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %v", len(f.lines), f.lines)
	}
	if f.lines[0] != "macro = fallback-text" {
		t.Errorf("Expected default macro value, got %q", f.lines[0])
	}
}

func TestFeedOverflowRecovers(t *testing.T) {
	f := newConsoleFixture()

	for i := 0; i < maxLineLen+100; i++ {
		f.c.Feed('a')
	}
	f.c.Feed('\n')
	if f.last() != "error: line too long" {
		t.Fatalf("Expected overflow error, got %q", f.last())
	}

	f.reset()
	for _, b := range []byte("run\n") {
		f.c.Feed(b)
	}
	if f.last() != "ok" {
		t.Errorf("Expected console usable after overflow, got %q", f.last())
	}
	if !f.c.RunRequested() {
		t.Errorf("Expected run requested")
	}
}

func TestInfoOutput(t *testing.T) {
	f := newConsoleFixture()
	core.SetMillis(1234)
	defer core.SetMillis(0)

	f.c.Execute("info")
	if len(f.lines) < 4 {
		t.Fatalf("Expected info output, got %v", f.lines)
	}
	if f.lines[0] != "pi-key 1.0.0" {
		t.Errorf("Expected identity line, got %q", f.lines[0])
	}
	if f.lines[1] != "uptime_ms: 1234" {
		t.Errorf("Expected uptime line, got %q", f.lines[1])
	}
	found := false
	for _, line := range f.lines {
		if line == "macro = fallback-text" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected settings in info output, got %v", f.lines)
	}
	if f.last() != "ok" {
		t.Errorf("Expected ok, got %q", f.last())
	}
}

func TestRegisterFirstWins(t *testing.T) {
	f := newConsoleFixture()

	calls := 0
	f.c.Register("probe", "probe", func(args []string) error {
		calls++
		return nil
	})
	f.c.Register("probe", "probe <shadowed>", func(args []string) error {
		t.Errorf("Shadowing handler should never run")
		return nil
	})

	f.c.Execute("probe")
	if calls != 1 {
		t.Errorf("Expected original handler called once, got %d", calls)
	}

	f.reset()
	f.c.Execute("help")
	for _, line := range f.lines {
		if line == "probe <shadowed>" {
			t.Errorf("Expected first registration to win, found %q", line)
		}
	}
}
