// Package console implements the line-oriented maintenance console
// spoken over the USB serial port. The device firmware feeds it raw
// bytes from the serial connection; the host tooling builds the same
// command lines programmatically. Commands operate on the in-RAM
// configuration, so nothing persists until the settings are flashed
// with the image.
package console

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/google/shlex"

	"github.com/puckawayjeff/pi-key/core"
)

// Handler executes one console command with its arguments (the command
// name itself already stripped). A non-nil error is reported to the
// caller as an error line instead of the ok acknowledgement.
type Handler func(args []string) error

// command is one registered console command with its usage string.
type command struct {
	name  string
	usage string
	run   Handler
}

// Console parses command lines and dispatches them to handlers. The
// builtin set covers configuration and diagnostics; targets register
// platform commands (reset) on top before entering their read loop.
type Console struct {
	mu       sync.RWMutex
	commands map[string]*command
	order    []string

	cfg *core.Config
	out func(string)

	line     []byte
	overflow bool

	runRequested bool
}

// maxLineLen bounds one command line; longer input is discarded up to
// the next newline and reported as an error.
const maxLineLen = 512

// New creates a console bound to the given configuration. Every
// response line, including acknowledgements, goes through out.
func New(cfg *core.Config, out func(string)) *Console {
	c := &Console{
		commands: make(map[string]*command),
		cfg:      cfg,
		out:      out,
	}
	c.Register("help", "help", c.cmdHelp)
	c.Register("info", "info", c.cmdInfo)
	c.Register("get", "get <key>", c.cmdGet)
	c.Register("set", "set <key> <value> [crc=HHHH]", c.cmdSet)
	c.Register("check", "check <macro-text>", c.cmdCheck)
	c.Register("events", "events [clear]", c.cmdEvents)
	c.Register("debug", "debug on|off", c.cmdDebug)
	c.Register("run", "run", c.cmdRun)
	return c
}

// Register adds a command to the console. The first registration of a
// name wins; later attempts are ignored so builtins cannot be shadowed.
func (c *Console) Register(name, usage string, run Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.commands[name]; exists {
		return
	}
	c.commands[name] = &command{name: name, usage: usage, run: run}
	c.order = append(c.order, name)
}

// Feed consumes one byte of serial input, executing the buffered line
// when a newline arrives. Carriage returns are ignored so both \n and
// \r\n terminated input work.
func (c *Console) Feed(b byte) {
	switch b {
	case '\r':
	case '\n':
		line := string(c.line)
		c.line = c.line[:0]
		if c.overflow {
			c.overflow = false
			c.out("error: line too long")
			return
		}
		c.Execute(line)
	default:
		if len(c.line) >= maxLineLen {
			c.overflow = true
			return
		}
		c.line = append(c.line, b)
	}
}

// Execute tokenizes and dispatches one command line. Blank lines are
// ignored; every dispatched command is answered with either ok or an
// error line.
func (c *Console) Execute(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	args, err := shlex.Split(line)
	if err != nil {
		c.out("error: " + err.Error())
		return
	}
	if len(args) == 0 {
		return
	}

	c.mu.RLock()
	cmd, ok := c.commands[args[0]]
	c.mu.RUnlock()
	if !ok {
		c.out("error: unknown command '" + args[0] + "' (try help)")
		return
	}

	if err := cmd.run(args[1:]); err != nil {
		c.out("error: " + err.Error())
		return
	}
	c.out("ok")
}

// RunRequested reports whether a run command has been received. The
// device main checks this after feeding input and leaves the console
// loop for the run loop when it flips.
func (c *Console) RunRequested() bool {
	return c.runRequested
}

func (c *Console) cmdHelp(args []string) error {
	for _, name := range c.order {
		c.out(c.commands[name].usage)
	}
	return nil
}

func (c *Console) cmdInfo(args []string) error {
	c.out(core.FirmwareName + " " + core.FirmwareVersion)
	c.out("uptime_ms: " + strconv.FormatUint(uint64(core.Millis()), 10))
	if core.IsDebugEnabled() {
		c.out("debug: on")
	} else {
		c.out("debug: off")
	}
	c.cfg.EachSetting(func(name, value string) {
		c.out(name + " = " + value)
	})
	return nil
}

func (c *Console) cmdGet(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get <key>")
	}
	value, ok := c.cfg.Get(args[0])
	if !ok {
		return errors.New("unknown setting '" + args[0] + "'")
	}
	c.out(args[0] + " = " + value)
	return nil
}

func (c *Console) cmdSet(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: set <key> <value> [crc=HHHH]")
	}
	key, value := args[0], args[1]
	if len(args) == 3 {
		want, err := parseCRCArg(args[2])
		if err != nil {
			return err
		}
		if got := CRC16([]byte(value)); got != want {
			return errors.New("crc mismatch: got " + formatHex4(got) + ", want " + formatHex4(want))
		}
	}
	return c.cfg.Set(key, value)
}

func (c *Console) cmdCheck(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: check <macro-text>")
	}
	text := strings.Join(args, " ")

	macro := core.Compile(text)
	for i, tok := range macro {
		prefix := strconv.Itoa(i) + ": "
		if tok.Kind == core.TokenLiteral {
			c.out(prefix + "literal " + strconv.Quote(string(rune(tok.Char))))
			continue
		}
		desc := core.SymbolName(tok.Key)
		if mods := tok.Mods.String(); mods != "" {
			desc = mods + "+" + desc
		}
		c.out(prefix + "chord " + desc)
	}
	c.out("tokens: " + strconv.Itoa(len(macro)))
	return nil
}

func (c *Console) cmdEvents(args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		core.ClearEventRing()
		return nil
	}
	if len(args) != 0 {
		return errors.New("usage: events [clear]")
	}
	core.DumpEventRing(core.DebugWriter(c.out))
	return nil
}

func (c *Console) cmdDebug(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: debug on|off")
	}
	switch args[0] {
	case "on":
		core.SetDebugEnabled(true)
	case "off":
		core.SetDebugEnabled(false)
	default:
		return errors.New("usage: debug on|off")
	}
	return nil
}

func (c *Console) cmdRun(args []string) error {
	c.runRequested = true
	return nil
}

// QuoteArg wraps s in double quotes, escaping backslashes and embedded
// quotes, so the console tokenizer reads it back verbatim even when it
// contains spaces.
func QuoteArg(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// CRCArg renders the integrity trailer for a payload, suitable as the
// final argument of a set command.
func CRCArg(payload string) string {
	return "crc=" + formatHex4(CRC16([]byte(payload)))
}

func parseCRCArg(arg string) (uint16, error) {
	hex, ok := strings.CutPrefix(arg, "crc=")
	if !ok {
		return 0, errors.New("expected crc=HHHH trailer, got '" + arg + "'")
	}
	v, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return 0, errors.New("bad crc value '" + hex + "'")
	}
	return uint16(v), nil
}

func formatHex4(v uint16) string {
	s := strconv.FormatUint(uint64(v), 16)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
