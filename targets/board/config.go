//go:build rp2040 || rp2350

package board

// Compiled-in configuration. Edit and reflash to change the defaults;
// the maintenance console edits the RAM copy only. Keys not listed here
// keep the built-in defaults.
var defaultConfigJSON = []byte(`{
	"button_type": "mechanical",
	"button_pin": 29,
	"led_pin": 16,
	"led_driver": "ws2812",
	"macro": "fallback-text",
	"keep_alive_macro": "{SPACE}{LEFT}"
}`)
