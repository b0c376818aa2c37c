package core

import "strconv"

// RGB is one LED color. Drivers that only have a single channel
// available (plain PWM) use the perceived brightness instead.
type RGB struct {
	R, G, B uint8
}

// Off reports whether the color is fully dark.
func (c RGB) Off() bool { return c.R == 0 && c.G == 0 && c.B == 0 }

// Brightness folds the color to a single 0..255 channel.
func (c RGB) Brightness() uint8 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

// Named colors accepted in the configuration.
var (
	ColorOff     = RGB{0, 0, 0}
	ColorRed     = RGB{255, 0, 0}
	ColorGreen   = RGB{0, 255, 0}
	ColorBlue    = RGB{0, 0, 255}
	ColorWhite   = RGB{255, 255, 255}
	ColorPurple  = RGB{204, 0, 204}
	ColorAmber   = RGB{255, 191, 0}
	ColorOrange  = RGB{255, 128, 0}
	ColorYellow  = RGB{255, 255, 0}
	ColorCyan    = RGB{0, 255, 255}
	ColorMagenta = RGB{255, 0, 255}
	ColorPink    = RGB{255, 64, 96}
)

var namedColors = map[string]RGB{
	"off":     ColorOff,
	"black":   ColorOff,
	"red":     ColorRed,
	"green":   ColorGreen,
	"blue":    ColorBlue,
	"white":   ColorWhite,
	"purple":  ColorPurple,
	"amber":   ColorAmber,
	"orange":  ColorOrange,
	"yellow":  ColorYellow,
	"cyan":    ColorCyan,
	"magenta": ColorMagenta,
	"pink":    ColorPink,
}

// ParseColor resolves a color name or a "#RRGGBB" / "RRGGBB" hex triple.
func ParseColor(s string) (RGB, bool) {
	if c, ok := namedColors[lower(s)]; ok {
		return c, true
	}
	hex := s
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

func lower(s string) string {
	out := []byte(s)
	changed := false
	for i := 0; i < len(out); i++ {
		if out[i] >= 'A' && out[i] <= 'Z' {
			out[i] += 'a' - 'A'
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(out)
}

// LedMode selects the feedback pattern being displayed.
type LedMode uint8

const (
	LedIdle LedMode = iota
	LedFlash
	LedBreathing
	LedDoubleFlash
	LedFault
)

const (
	doubleFlashPhaseMS = 150 // on/off cadence of the cancel pulse
	faultPhaseMS       = 250 // on/off cadence of the fault blink
	breatheStep        = 2   // brightness delta per tick
)

// LedController computes the LED color for the current tick without ever
// sleeping. Timed patterns advance from the tick timestamps alone, so a
// slow or stalled loop degrades the animation but never blocks input.
type LedController struct {
	flashMS        uint32
	macroColor     RGB
	keepAliveColor RGB
	cancelColor    RGB
	breathMin      int16
	breathMax      int16

	mode      LedMode
	modeStart uint32

	brightness int16
	dir        int16

	out     RGB
	haveOut bool
}

// NewLedController builds a controller with the configured palette.
func NewLedController(cfg *Config) *LedController {
	return &LedController{
		flashMS:        cfg.FlashMS,
		macroColor:     cfg.MacroRGB(),
		keepAliveColor: cfg.KeepAliveRGB(),
		cancelColor:    cfg.CancelRGB(),
		breathMin:      int16(cfg.BreathMin),
		breathMax:      int16(cfg.BreathMax),
		dir:            breatheStep,
	}
}

// Mode returns the pattern currently displayed.
func (l *LedController) Mode() LedMode { return l.mode }

// Enter switches the displayed pattern. Entering Flash while a flash is
// in progress restarts it; entering Breathing restarts from the bottom
// of the brightness ramp.
func (l *LedController) Enter(mode LedMode, now uint32) {
	l.mode = mode
	l.modeStart = now
	if mode == LedBreathing {
		l.brightness = l.breathMin
		l.dir = breatheStep
	}
}

// Tick advances the active pattern and returns the color for this tick
// plus whether it differs from the previous tick. Callers push the color
// to the driver only when it changed.
func (l *LedController) Tick(now uint32) (RGB, bool) {
	var c RGB
	switch l.mode {
	case LedFlash:
		if now-l.modeStart >= l.flashMS {
			l.mode = LedIdle
		} else {
			c = l.macroColor
		}
	case LedBreathing:
		l.brightness += l.dir
		if l.brightness >= l.breathMax {
			l.brightness = l.breathMax
			l.dir = -breatheStep
		} else if l.brightness <= l.breathMin {
			l.brightness = l.breathMin
			l.dir = breatheStep
		}
		c = scaleColor(l.keepAliveColor, uint8(l.brightness))
	case LedDoubleFlash:
		phase := (now - l.modeStart) / doubleFlashPhaseMS
		if phase >= 4 {
			l.mode = LedIdle
		} else if phase%2 == 0 {
			c = l.cancelColor
		}
	case LedFault:
		if (now-l.modeStart)/faultPhaseMS%2 == 0 {
			c = l.cancelColor
		}
	}

	changed := !l.haveOut || c != l.out
	l.out = c
	l.haveOut = true
	return c, changed
}

// scaleColor dims a color by b/255.
func scaleColor(c RGB, b uint8) RGB {
	return RGB{
		R: uint8(uint16(c.R) * uint16(b) / 255),
		G: uint8(uint16(c.G) * uint16(b) / 255),
		B: uint8(uint16(c.B) * uint16(b) / 255),
	}
}
