// Macro token compiler.
//
// Compiles macro source text into an ordered action list using a small
// brace grammar: {{ and }} escape literal braces, {KEY} presses a named
// key, {MOD+KEY} presses a chord. Compilation is total — malformed spans
// degrade to literal text and scanning continues.
package core

import "strings"

// TokenKind tags a MacroToken variant.
type TokenKind uint8

const (
	TokenLiteral TokenKind = iota
	TokenChord
)

// MacroToken is one replayable action: a literal character or a key chord.
type MacroToken struct {
	Kind TokenKind
	Char byte      // TokenLiteral: character to type
	Mods Modifier  // TokenChord: modifier set (may be empty)
	Key  KeySymbol // TokenChord: chord key
}

// Literal builds a literal-character token.
func Literal(ch byte) MacroToken {
	return MacroToken{Kind: TokenLiteral, Char: ch}
}

// Chord builds a key-chord token.
func Chord(mods Modifier, key KeySymbol) MacroToken {
	return MacroToken{Kind: TokenChord, Mods: mods, Key: key}
}

// ParsedMacro is an ordered action sequence compiled once from source text
// and immutable thereafter.
type ParsedMacro []MacroToken

// Compile scans src left to right in a single pass, no backtracking.
//
//	{{            literal '{'
//	}}            literal '}'
//	{BODY}        interpreted token; on failure the whole bracketed span
//	              (braces included) degrades to literal characters
//	{ unmatched   the brace and all remaining text degrade to literals
//	anything else one literal character
func Compile(src string) ParsedMacro {
	out := make(ParsedMacro, 0, len(src))
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == '{' && i+1 < len(src) && src[i+1] == '{':
			out = append(out, Literal('{'))
			i += 2
		case ch == '}' && i+1 < len(src) && src[i+1] == '}':
			out = append(out, Literal('}'))
			i += 2
		case ch == '{':
			rel := strings.IndexByte(src[i+1:], '}')
			if rel < 0 {
				// No closing brace before end of text: degrade, do
				// not discard.
				out = appendLiterals(out, src[i:])
				return out
			}
			body := src[i+1 : i+1+rel]
			if tok, ok := interpretTokenBody(body); ok {
				out = append(out, tok)
			} else {
				out = appendLiterals(out, src[i:i+rel+2])
			}
			i += rel + 2
		default:
			out = append(out, Literal(ch))
			i++
		}
	}
	return out
}

// interpretTokenBody resolves the text between braces. The body splits on
// '+': every component except the last must be a modifier name, the last
// must be a named key or a single printable character. Reports ok=false
// when any component fails to resolve.
func interpretTokenBody(body string) (MacroToken, bool) {
	parts := strings.Split(body, "+")
	mods := ModNone
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierNames[strings.ToLower(part)]
		if !ok {
			return MacroToken{}, false
		}
		mods = mods.With(mod)
	}
	key, ok := resolveKeyName(parts[len(parts)-1])
	if !ok {
		return MacroToken{}, false
	}
	return Chord(mods, key), true
}

// resolveKeyName matches a chord key component: the named-key table first,
// then any single printable character. Letters are canonicalized to
// lowercase; the shift modifier, not the key symbol, selects case.
func resolveKeyName(name string) (KeySymbol, bool) {
	if sym, ok := keyNames[strings.ToLower(name)]; ok {
		return sym, true
	}
	if len(name) == 1 {
		ch := name[0]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		if ch >= 0x20 && ch <= 0x7E {
			return SymbolForChar(ch), true
		}
	}
	return SymNone, false
}

func appendLiterals(out ParsedMacro, text string) ParsedMacro {
	for j := 0; j < len(text); j++ {
		out = append(out, Literal(text[j]))
	}
	return out
}
