//go:build rp2040 || rp2350

package board

import (
	"errors"

	tgk "machine/usb/hid/keyboard"

	"github.com/puckawayjeff/pi-key/core"
)

// hidPort abstracts over TinyGo's unexported keyboard type so the
// adapter can be reasoned about against an interface.
type hidPort interface {
	WriteByte(b byte) error
	Down(c tgk.Keycode) error
	Up(c tgk.Keycode) error
	Release() error
}

// usbKeyboard emits keystrokes through the TinyGo USB HID keyboard
// endpoint.
type usbKeyboard struct {
	port hidPort
}

func newUSBKeyboard() *usbKeyboard {
	return &usbKeyboard{port: tgk.Port()}
}

// Ready always reports true: the endpoint has no readiness signal, so
// trouble surfaces through the write calls instead.
func (k *usbKeyboard) Ready() bool {
	return true
}

func (k *usbKeyboard) TypeChar(ch byte) error {
	// WriteByte maps printable ASCII to keycodes itself, including the
	// shift handling for uppercase and shifted punctuation.
	return k.port.WriteByte(ch)
}

func (k *usbKeyboard) KeyDown(sym core.KeySymbol) error {
	code, err := keycodeFor(sym)
	if err != nil {
		return err
	}
	return k.port.Down(code)
}

func (k *usbKeyboard) KeyUp(sym core.KeySymbol) error {
	code, err := keycodeFor(sym)
	if err != nil {
		return err
	}
	return k.port.Up(code)
}

func (k *usbKeyboard) ReleaseAll() error {
	return k.port.Release()
}

var errUnmappedKey = errors.New("no keycode for key symbol")

// punctKeycodes covers the unshifted punctuation a chord key can carry.
// Shifted punctuation has no own keycode and stays unmapped.
var punctKeycodes = map[byte]tgk.Keycode{
	' ':  tgk.KeySpace,
	'-':  tgk.KeyMinus,
	'=':  tgk.KeyEqual,
	'[':  tgk.KeyLeftBrace,
	']':  tgk.KeyRightBrace,
	'\\': tgk.KeyBackslash,
	';':  tgk.KeySemicolon,
	'\'': tgk.KeyQuote,
	'`':  tgk.KeyTilde,
	',':  tgk.KeyComma,
	'.':  tgk.KeyPeriod,
	'/':  tgk.KeySlash,
}

// keycodeFor translates a key symbol into the HID keycode the TinyGo
// keyboard understands. Chord key characters arrive lowercased.
func keycodeFor(sym core.KeySymbol) (tgk.Keycode, error) {
	if sym.IsChar() {
		ch := sym.Char()
		switch {
		case ch >= 'a' && ch <= 'z':
			return tgk.KeyA + tgk.Keycode(ch-'a'), nil
		case ch >= '1' && ch <= '9':
			return tgk.Key1 + tgk.Keycode(ch-'1'), nil
		case ch == '0':
			return tgk.Key0, nil
		}
		if code, ok := punctKeycodes[ch]; ok {
			return code, nil
		}
		return 0, errUnmappedKey
	}

	// F1..F12 are contiguous in both tables; F13 onward is not.
	if sym >= core.SymF1 && sym <= core.SymF12 {
		return tgk.KeyF1 + tgk.Keycode(sym-core.SymF1), nil
	}

	switch sym {
	case core.SymEnter:
		return tgk.KeyEnter, nil
	case core.SymTab:
		return tgk.KeyTab, nil
	case core.SymSpace:
		return tgk.KeySpace, nil
	case core.SymBackspace:
		return tgk.KeyBackspace, nil
	case core.SymDelete:
		return tgk.KeyDelete, nil
	case core.SymEsc:
		return tgk.KeyEsc, nil
	case core.SymInsert:
		return tgk.KeyInsert, nil
	case core.SymUp:
		return tgk.KeyUp, nil
	case core.SymDown:
		return tgk.KeyDown, nil
	case core.SymLeft:
		return tgk.KeyLeft, nil
	case core.SymRight:
		return tgk.KeyRight, nil
	case core.SymHome:
		return tgk.KeyHome, nil
	case core.SymEnd:
		return tgk.KeyEnd, nil
	case core.SymPageUp:
		return tgk.KeyPageUp, nil
	case core.SymPageDown:
		return tgk.KeyPageDown, nil
	case core.SymF13:
		return tgk.KeyF13, nil
	case core.SymF14:
		return tgk.KeyF14, nil
	case core.SymF15:
		return tgk.KeyF15, nil
	case core.SymCtrl:
		return tgk.KeyModifierCtrl, nil
	case core.SymShift:
		return tgk.KeyModifierShift, nil
	case core.SymAlt:
		return tgk.KeyModifierAlt, nil
	case core.SymGui:
		return tgk.KeyModifierGUI, nil
	}
	return 0, errUnmappedKey
}
