package core

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Button wiring styles.
const (
	ButtonMechanical = "mechanical" // normally open to ground, internal pull-up
	ButtonCapacitive = "capacitive" // capacitive touch module, active high
)

// LED driver selection.
const (
	LedDriverWS2812    = "ws2812"     // bit-banged WS2812 via tinygo drivers
	LedDriverWS2812PIO = "ws2812-pio" // WS2812 timed by a PIO state machine
	LedDriverPWM       = "pwm"        // single-channel PWM brightness only
)

// Config holds everything the session needs to run. Values left at their
// zero value in the source JSON are replaced with defaults, so a partial
// document is always usable. All time quantities are milliseconds.
type Config struct {
	ButtonType string `json:"button_type"`
	ButtonPin  uint8  `json:"button_pin"`
	LedPin     uint8  `json:"led_pin"`
	LedDriver  string `json:"led_driver"`

	Macro          string `json:"macro"`
	KeepAliveMacro string `json:"keep_alive_macro"`

	DebounceMS       uint32 `json:"debounce_interval"`
	DoublePressGapMS uint32 `json:"double_press_gap"`
	LongPressMS      uint32 `json:"long_press_duration"`
	KeepAliveMinMS   uint32 `json:"keep_alive_min"`
	KeepAliveMaxMS   uint32 `json:"keep_alive_max"`
	FlashMS          uint32 `json:"flash_duration"`
	InterKeyMS       uint32 `json:"inter_key_delay"`
	ChordHoldMS      uint32 `json:"chord_hold"`
	SinkWaitMS       uint32 `json:"sink_wait"`

	MacroColor     string `json:"macro_color"`
	KeepAliveColor string `json:"keepalive_color"`
	CancelColor    string `json:"cancel_color"`
	BreathMin      uint8  `json:"breath_min"`
	BreathMax      uint8  `json:"breath_max"`

	USBVendorID  uint16 `json:"usb_vendor_id"`
	USBProductID uint16 `json:"usb_product_id"`
	USBProduct   string `json:"usb_product"`
}

// LoadConfig parses a JSON config document and fills in defaults for any
// missing fields. Passing no data yields the default configuration.
func LoadConfig(jsonData []byte) (*Config, error) {
	var cfg Config
	if len(jsonData) > 0 {
		if err := json.Unmarshal(jsonData, &cfg); err != nil {
			return nil, err
		}
	}
	applyDefaults(&cfg)
	cfg.normalize()
	return &cfg, nil
}

// DefaultConfig returns a config with every field at its default.
func DefaultConfig() *Config {
	cfg, _ := LoadConfig(nil)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.ButtonType == "" {
		cfg.ButtonType = ButtonMechanical
	}
	if cfg.ButtonPin == 0 {
		cfg.ButtonPin = 29
	}
	if cfg.LedPin == 0 {
		cfg.LedPin = 16
	}
	if cfg.LedDriver == "" {
		cfg.LedDriver = LedDriverWS2812
	}
	if cfg.Macro == "" {
		cfg.Macro = "fallback-text"
	}
	if cfg.KeepAliveMacro == "" {
		cfg.KeepAliveMacro = "{SPACE}{LEFT}"
	}
	if cfg.DebounceMS == 0 {
		cfg.DebounceMS = 50
	}
	if cfg.DoublePressGapMS == 0 {
		cfg.DoublePressGapMS = 500
	}
	if cfg.LongPressMS == 0 {
		cfg.LongPressMS = 1000
	}
	if cfg.KeepAliveMinMS == 0 {
		cfg.KeepAliveMinMS = 800
	}
	if cfg.KeepAliveMaxMS == 0 {
		cfg.KeepAliveMaxMS = 2000
	}
	if cfg.FlashMS == 0 {
		cfg.FlashMS = 1000
	}
	if cfg.InterKeyMS == 0 {
		cfg.InterKeyMS = 10
	}
	if cfg.ChordHoldMS == 0 {
		cfg.ChordHoldMS = 50
	}
	if cfg.SinkWaitMS == 0 {
		cfg.SinkWaitMS = 500
	}
	if cfg.MacroColor == "" {
		cfg.MacroColor = "purple"
	}
	if cfg.KeepAliveColor == "" {
		cfg.KeepAliveColor = "amber"
	}
	if cfg.CancelColor == "" {
		cfg.CancelColor = "red"
	}
	if cfg.BreathMax == 0 {
		cfg.BreathMax = 127
	}
	if cfg.USBVendorID == 0 {
		cfg.USBVendorID = 0x413C
	}
	if cfg.USBProductID == 0 {
		cfg.USBProductID = 0x2113
	}
	if cfg.USBProduct == "" {
		cfg.USBProduct = "Dell KB216 Wired Keyboard"
	}
}

// normalize repairs field combinations that would misbehave at runtime.
func (c *Config) normalize() {
	if c.KeepAliveMinMS > c.KeepAliveMaxMS {
		c.KeepAliveMinMS, c.KeepAliveMaxMS = c.KeepAliveMaxMS, c.KeepAliveMinMS
	}
	if c.BreathMin > c.BreathMax {
		c.BreathMin, c.BreathMax = c.BreathMax, c.BreathMin
	}
	switch c.ButtonType {
	case ButtonMechanical, ButtonCapacitive:
	default:
		c.ButtonType = ButtonMechanical
	}
	switch c.LedDriver {
	case LedDriverWS2812, LedDriverWS2812PIO, LedDriverPWM:
	default:
		c.LedDriver = LedDriverWS2812
	}
}

// MacroRGB resolves the configured macro flash color.
func (c *Config) MacroRGB() RGB { return colorOrDefault(c.MacroColor, ColorPurple) }

// KeepAliveRGB resolves the configured keep-alive breathing color.
func (c *Config) KeepAliveRGB() RGB { return colorOrDefault(c.KeepAliveColor, ColorAmber) }

// CancelRGB resolves the configured cancel/fault color.
func (c *Config) CancelRGB() RGB { return colorOrDefault(c.CancelColor, ColorRed) }

func colorOrDefault(name string, fallback RGB) RGB {
	if rgb, ok := ParseColor(name); ok {
		return rgb
	}
	return fallback
}

var errBadSetting = errors.New("unknown setting")

// setting describes one configuration field reachable from the
// maintenance console by name.
type setting struct {
	name string
	get  func(c *Config) string
	set  func(c *Config, v string) error
}

var settings = []setting{
	{"button_type", func(c *Config) string { return c.ButtonType },
		func(c *Config, v string) error {
			if v != ButtonMechanical && v != ButtonCapacitive {
				return errors.New("button_type must be mechanical or capacitive")
			}
			c.ButtonType = v
			return nil
		}},
	{"button_pin", getU8(func(c *Config) *uint8 { return &c.ButtonPin }),
		setU8(func(c *Config) *uint8 { return &c.ButtonPin })},
	{"led_pin", getU8(func(c *Config) *uint8 { return &c.LedPin }),
		setU8(func(c *Config) *uint8 { return &c.LedPin })},
	{"led_driver", func(c *Config) string { return c.LedDriver },
		func(c *Config, v string) error {
			switch v {
			case LedDriverWS2812, LedDriverWS2812PIO, LedDriverPWM:
				c.LedDriver = v
				return nil
			}
			return errors.New("led_driver must be ws2812, ws2812-pio or pwm")
		}},
	{"macro", func(c *Config) string { return c.Macro },
		func(c *Config, v string) error { c.Macro = v; return nil }},
	{"keep_alive_macro", func(c *Config) string { return c.KeepAliveMacro },
		func(c *Config, v string) error { c.KeepAliveMacro = v; return nil }},
	{"debounce_interval", getU32(func(c *Config) *uint32 { return &c.DebounceMS }),
		setU32(func(c *Config) *uint32 { return &c.DebounceMS })},
	{"double_press_gap", getU32(func(c *Config) *uint32 { return &c.DoublePressGapMS }),
		setU32(func(c *Config) *uint32 { return &c.DoublePressGapMS })},
	{"long_press_duration", getU32(func(c *Config) *uint32 { return &c.LongPressMS }),
		setU32(func(c *Config) *uint32 { return &c.LongPressMS })},
	{"keep_alive_min", getU32(func(c *Config) *uint32 { return &c.KeepAliveMinMS }),
		setU32(func(c *Config) *uint32 { return &c.KeepAliveMinMS })},
	{"keep_alive_max", getU32(func(c *Config) *uint32 { return &c.KeepAliveMaxMS }),
		setU32(func(c *Config) *uint32 { return &c.KeepAliveMaxMS })},
	{"flash_duration", getU32(func(c *Config) *uint32 { return &c.FlashMS }),
		setU32(func(c *Config) *uint32 { return &c.FlashMS })},
	{"inter_key_delay", getU32(func(c *Config) *uint32 { return &c.InterKeyMS }),
		setU32(func(c *Config) *uint32 { return &c.InterKeyMS })},
	{"chord_hold", getU32(func(c *Config) *uint32 { return &c.ChordHoldMS }),
		setU32(func(c *Config) *uint32 { return &c.ChordHoldMS })},
	{"sink_wait", getU32(func(c *Config) *uint32 { return &c.SinkWaitMS }),
		setU32(func(c *Config) *uint32 { return &c.SinkWaitMS })},
	{"macro_color", getColor(func(c *Config) *string { return &c.MacroColor }),
		setColor(func(c *Config) *string { return &c.MacroColor })},
	{"keepalive_color", getColor(func(c *Config) *string { return &c.KeepAliveColor }),
		setColor(func(c *Config) *string { return &c.KeepAliveColor })},
	{"cancel_color", getColor(func(c *Config) *string { return &c.CancelColor }),
		setColor(func(c *Config) *string { return &c.CancelColor })},
	{"breath_min", getU8(func(c *Config) *uint8 { return &c.BreathMin }),
		setU8(func(c *Config) *uint8 { return &c.BreathMin })},
	{"breath_max", getU8(func(c *Config) *uint8 { return &c.BreathMax }),
		setU8(func(c *Config) *uint8 { return &c.BreathMax })},
	{"usb_vendor_id", getU16(func(c *Config) *uint16 { return &c.USBVendorID }),
		setU16(func(c *Config) *uint16 { return &c.USBVendorID })},
	{"usb_product_id", getU16(func(c *Config) *uint16 { return &c.USBProductID }),
		setU16(func(c *Config) *uint16 { return &c.USBProductID })},
	{"usb_product", func(c *Config) string { return c.USBProduct },
		func(c *Config, v string) error { c.USBProduct = v; return nil }},
}

// Get returns the current value of a named setting.
func (c *Config) Get(name string) (string, bool) {
	for i := range settings {
		if settings[i].name == name {
			return settings[i].get(c), true
		}
	}
	return "", false
}

// Set updates a named setting from its string form. Fields that interact
// (keep-alive min/max, breathing bounds) are repaired at session start,
// not here.
func (c *Config) Set(name, value string) error {
	for i := range settings {
		if settings[i].name == name {
			return settings[i].set(c, value)
		}
	}
	return errBadSetting
}

// EachSetting visits all settings in declaration order.
func (c *Config) EachSetting(fn func(name, value string)) {
	for i := range settings {
		fn(settings[i].name, settings[i].get(c))
	}
}

func getU8(f func(*Config) *uint8) func(*Config) string {
	return func(c *Config) string { return utoa(uint32(*f(c))) }
}

func setU8(f func(*Config) *uint8) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 0, 8)
		if err != nil {
			return err
		}
		*f(c) = uint8(n)
		return nil
	}
}

func getU16(f func(*Config) *uint16) func(*Config) string {
	return func(c *Config) string { return "0x" + strconv.FormatUint(uint64(*f(c)), 16) }
}

func setU16(f func(*Config) *uint16) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 0, 16)
		if err != nil {
			return err
		}
		*f(c) = uint16(n)
		return nil
	}
}

func getU32(f func(*Config) *uint32) func(*Config) string {
	return func(c *Config) string { return utoa(*f(c)) }
}

func setU32(f func(*Config) *uint32) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 0, 32)
		if err != nil {
			return err
		}
		*f(c) = uint32(n)
		return nil
	}
}

func getColor(f func(*Config) *string) func(*Config) string {
	return func(c *Config) string { return *f(c) }
}

func setColor(f func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		if _, ok := ParseColor(v); !ok {
			return errors.New("unknown color")
		}
		*f(c) = v
		return nil
	}
}
