package core

import "testing"

// literalText flattens a run of literal tokens back into a string.
// Fails the test if a non-literal token is present.
func literalText(t *testing.T, macro ParsedMacro) string {
	t.Helper()
	out := make([]byte, 0, len(macro))
	for i, tok := range macro {
		if tok.Kind != TokenLiteral {
			t.Fatalf("token %d: expected literal, got chord %s+%s",
				i, tok.Mods.String(), SymbolName(tok.Key))
		}
		out = append(out, tok.Char)
	}
	return string(out)
}

func TestCompilePlainText(t *testing.T) {
	macro := Compile("Hello")

	if len(macro) != 5 {
		t.Fatalf("Expected 5 tokens, got %d", len(macro))
	}
	if got := literalText(t, macro); got != "Hello" {
		t.Errorf("Expected literals 'Hello', got '%s'", got)
	}
}

func TestCompileNamedKey(t *testing.T) {
	macro := Compile("{TAB}")

	if len(macro) != 1 {
		t.Fatalf("Expected 1 token, got %d", len(macro))
	}
	tok := macro[0]
	if tok.Kind != TokenChord {
		t.Fatal("Expected a chord token")
	}
	if tok.Mods != ModNone {
		t.Errorf("Expected empty modifier set, got %s", tok.Mods.String())
	}
	if tok.Key != SymTab {
		t.Errorf("Expected Tab, got %s", SymbolName(tok.Key))
	}
}

func TestCompileChord(t *testing.T) {
	macro := Compile("{CTRL+C}")

	if len(macro) != 1 {
		t.Fatalf("Expected 1 token, got %d", len(macro))
	}
	tok := macro[0]
	if tok.Kind != TokenChord {
		t.Fatal("Expected a chord token")
	}
	if tok.Mods != ModCtrl {
		t.Errorf("Expected ctrl, got %s", tok.Mods.String())
	}
	if tok.Key != SymbolForChar('c') {
		t.Errorf("Expected key 'c', got %s", SymbolName(tok.Key))
	}
}

func TestCompileEscapedBraces(t *testing.T) {
	macro := Compile("Python {{dict}}")

	if got := literalText(t, macro); got != "Python {dict}" {
		t.Errorf("Expected 'Python {dict}', got '%s'", got)
	}
}

func TestCompileUnclosedBrace(t *testing.T) {
	macro := Compile("{UNCLOSED text")

	if got := literalText(t, macro); got != "{UNCLOSED text" {
		t.Errorf("Expected '{UNCLOSED text', got '%s'", got)
	}
}

func TestCompileUnknownBodyDegrades(t *testing.T) {
	cases := []string{"{NOTAKEY}", "{BOGUS+C}", "{CTRL+NOPE}", "{}"}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			macro := Compile(src)
			if got := literalText(t, macro); got != src {
				t.Errorf("Expected degraded literals '%s', got '%s'", src, got)
			}
		})
	}
}

func TestCompileDegradedSpanDoesNotAbort(t *testing.T) {
	// Only the malformed span degrades; scanning continues after it.
	macro := Compile("a{NOPE}b{ENTER}")

	if len(macro) != 9 {
		t.Fatalf("Expected 9 tokens, got %d", len(macro))
	}
	if got := literalText(t, macro[:8]); got != "a{NOPE}b" {
		t.Errorf("Expected 'a{NOPE}b' prefix, got '%s'", got)
	}
	last := macro[8]
	if last.Kind != TokenChord || last.Key != SymEnter {
		t.Error("Trailing {ENTER} token not compiled")
	}
}

func TestCompileModifierAliases(t *testing.T) {
	for _, src := range []string{"{WIN+L}", "{CMD+L}", "{GUI+L}"} {
		t.Run(src, func(t *testing.T) {
			macro := Compile(src)
			if len(macro) != 1 || macro[0].Kind != TokenChord {
				t.Fatalf("Expected one chord for %s", src)
			}
			if macro[0].Mods != ModGui {
				t.Errorf("Expected gui modifier, got %s", macro[0].Mods.String())
			}
			if macro[0].Key != SymbolForChar('l') {
				t.Errorf("Expected key 'l', got %s", SymbolName(macro[0].Key))
			}
		})
	}
}

func TestCompileCaseInsensitive(t *testing.T) {
	macro := Compile("{ctrl+shift+Esc}")

	if len(macro) != 1 {
		t.Fatalf("Expected 1 token, got %d", len(macro))
	}
	tok := macro[0]
	if !tok.Mods.Has(ModCtrl) || !tok.Mods.Has(ModShift) || tok.Mods.Has(ModAlt) {
		t.Errorf("Wrong modifier set: %s", tok.Mods.String())
	}
	if tok.Key != SymEsc {
		t.Errorf("Expected esc, got %s", SymbolName(tok.Key))
	}
}

func TestCompileFunctionKeys(t *testing.T) {
	macro := Compile("{F1}{F15}")

	if len(macro) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(macro))
	}
	if macro[0].Key != SymF1 || macro[1].Key != SymF15 {
		t.Errorf("Function keys misresolved: %s, %s",
			SymbolName(macro[0].Key), SymbolName(macro[1].Key))
	}
}

func TestCompileOrderPreserved(t *testing.T) {
	macro := Compile("Hi{ENTER}!")

	want := []struct {
		kind TokenKind
		ch   byte
		key  KeySymbol
	}{
		{TokenLiteral, 'H', SymNone},
		{TokenLiteral, 'i', SymNone},
		{TokenChord, 0, SymEnter},
		{TokenLiteral, '!', SymNone},
	}
	if len(macro) != len(want) {
		t.Fatalf("Expected %d tokens, got %d", len(want), len(macro))
	}
	for i, w := range want {
		tok := macro[i]
		if tok.Kind != w.kind || tok.Char != w.ch || tok.Key != w.key {
			t.Errorf("token %d: got kind=%d char=%q key=%s", i, tok.Kind, tok.Char, SymbolName(tok.Key))
		}
	}
}

func TestCompileDefaultKeepAlive(t *testing.T) {
	macro := Compile("{SPACE}{LEFT}")

	if len(macro) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(macro))
	}
	if macro[0].Key != SymSpace || macro[1].Key != SymLeft {
		t.Errorf("Keep-alive default misresolved: %s, %s",
			SymbolName(macro[0].Key), SymbolName(macro[1].Key))
	}
}

func TestCompileEmpty(t *testing.T) {
	if macro := Compile(""); len(macro) != 0 {
		t.Errorf("Expected no tokens for empty source, got %d", len(macro))
	}
}
