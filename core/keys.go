// Key symbols and modifiers shared by the macro compiler and playback.
package core

// KeySymbol identifies one pressable key. Printable ASCII characters map to
// their own byte value; named keys (navigation, editing, function and
// modifier keys) start at symNamedBase so the two ranges never collide.
type KeySymbol uint16

const symNamedBase KeySymbol = 0x100

// SymNone is the zero value, meaning "no key".
const SymNone KeySymbol = 0

const (
	SymEnter KeySymbol = symNamedBase + iota
	SymTab
	SymSpace
	SymBackspace
	SymDelete
	SymEsc
	SymInsert
	SymUp
	SymDown
	SymLeft
	SymRight
	SymHome
	SymEnd
	SymPageUp
	SymPageDown
	SymF1
	SymF2
	SymF3
	SymF4
	SymF5
	SymF6
	SymF7
	SymF8
	SymF9
	SymF10
	SymF11
	SymF12
	SymF13
	SymF14
	SymF15
	SymCtrl
	SymShift
	SymAlt
	SymGui
)

// SymbolForChar returns the KeySymbol for a printable ASCII character,
// or SymNone if the byte is outside the printable range.
func SymbolForChar(ch byte) KeySymbol {
	if ch < 0x20 || ch > 0x7E {
		return SymNone
	}
	return KeySymbol(ch)
}

// IsChar reports whether s is a printable-character symbol.
func (s KeySymbol) IsChar() bool {
	return s >= 0x20 && s <= 0x7E
}

// Char returns the ASCII character of a printable-character symbol.
// Only meaningful when IsChar() is true.
func (s KeySymbol) Char() byte {
	return byte(s)
}

// keyNames maps lowercase key names from the macro grammar to symbols.
// Names follow the token grammar; a few common aliases are accepted.
var keyNames = map[string]KeySymbol{
	"enter":     SymEnter,
	"return":    SymEnter,
	"tab":       SymTab,
	"space":     SymSpace,
	"backspace": SymBackspace,
	"delete":    SymDelete,
	"del":       SymDelete,
	"esc":       SymEsc,
	"escape":    SymEsc,
	"insert":    SymInsert,
	"up":        SymUp,
	"down":      SymDown,
	"left":      SymLeft,
	"right":     SymRight,
	"home":      SymHome,
	"end":       SymEnd,
	"pageup":    SymPageUp,
	"pgup":      SymPageUp,
	"pagedown":  SymPageDown,
	"pgdn":      SymPageDown,
}

func init() {
	// F1..F15 are contiguous from SymF1.
	for i := uint32(0); i < 15; i++ {
		keyNames["f"+utoa(i+1)] = SymF1 + KeySymbol(i)
	}
}

// symbolNames is the reverse of keyNames for diagnostics output.
// Built lazily because it is only needed by the console check command.
var symbolNames map[KeySymbol]string

// SymbolName returns a printable name for a key symbol.
func SymbolName(s KeySymbol) string {
	if s.IsChar() {
		return string([]byte{s.Char()})
	}
	if symbolNames == nil {
		symbolNames = make(map[KeySymbol]string, len(keyNames))
		for name, sym := range keyNames {
			symbolNames[sym] = name
		}
		// Map iteration order is random, so pin canonical names for
		// aliased keys. Modifier keys live in modifierNames and are
		// added here by hand.
		symbolNames[SymEnter] = "enter"
		symbolNames[SymDelete] = "delete"
		symbolNames[SymEsc] = "esc"
		symbolNames[SymPageUp] = "pageup"
		symbolNames[SymPageDown] = "pagedown"
		symbolNames[SymCtrl] = "ctrl"
		symbolNames[SymShift] = "shift"
		symbolNames[SymAlt] = "alt"
		symbolNames[SymGui] = "gui"
	}
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return "?"
}

// Modifier is a bitmask over the four chord modifiers.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModGui
)

// ModNone is the empty modifier set.
const ModNone Modifier = 0

// With returns the set with m added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Has reports whether mod is in the set.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// modifierNames maps lowercase modifier names from the token grammar.
// WIN and CMD are aliases for GUI at the grammar level only.
var modifierNames = map[string]Modifier{
	"ctrl":  ModCtrl,
	"shift": ModShift,
	"alt":   ModAlt,
	"gui":   ModGui,
	"win":   ModGui,
	"cmd":   ModGui,
}

// modifierOrder fixes the press order for chord playback: Ctrl, Shift,
// Alt, Gui. Release happens in reverse.
var modifierOrder = [4]struct {
	Bit Modifier
	Sym KeySymbol
}{
	{ModCtrl, SymCtrl},
	{ModShift, SymShift},
	{ModAlt, SymAlt},
	{ModGui, SymGui},
}

// ModifierSymbols returns the modifier key symbols of the set in press order.
func (m Modifier) ModifierSymbols() []KeySymbol {
	syms := make([]KeySymbol, 0, 4)
	for _, entry := range modifierOrder {
		if m.Has(entry.Bit) {
			syms = append(syms, entry.Sym)
		}
	}
	return syms
}

// String renders the set as "ctrl+shift" style text for diagnostics.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	out := ""
	for _, entry := range modifierOrder {
		if m.Has(entry.Bit) {
			if out != "" {
				out += "+"
			}
			out += SymbolName(entry.Sym)
		}
	}
	return out
}
