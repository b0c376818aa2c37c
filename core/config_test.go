package core

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig(nil) failed: %v", err)
	}

	if cfg.ButtonType != ButtonMechanical {
		t.Errorf("Expected mechanical button, got %s", cfg.ButtonType)
	}
	if cfg.ButtonPin != 29 || cfg.LedPin != 16 {
		t.Errorf("Default pins wrong: button %d led %d", cfg.ButtonPin, cfg.LedPin)
	}
	if cfg.DebounceMS != 50 || cfg.DoublePressGapMS != 500 || cfg.LongPressMS != 1000 {
		t.Error("Default timing values wrong")
	}
	if cfg.KeepAliveMinMS != 800 || cfg.KeepAliveMaxMS != 2000 {
		t.Errorf("Default keep-alive bounds wrong: %d..%d",
			cfg.KeepAliveMinMS, cfg.KeepAliveMaxMS)
	}
	if cfg.Macro != "fallback-text" {
		t.Errorf("Expected fallback macro text, got %q", cfg.Macro)
	}
	if cfg.KeepAliveMacro != "{SPACE}{LEFT}" {
		t.Errorf("Expected default keep-alive macro, got %q", cfg.KeepAliveMacro)
	}
	if cfg.MacroRGB() != ColorPurple || cfg.KeepAliveRGB() != ColorAmber || cfg.CancelRGB() != ColorRed {
		t.Error("Default palette wrong")
	}
	if cfg.USBVendorID != 0x413C || cfg.USBProductID != 0x2113 {
		t.Errorf("Default USB identity wrong: %04x:%04x",
			cfg.USBVendorID, cfg.USBProductID)
	}
}

func TestLoadConfigPartialDocument(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"double_press_gap": 400, "keepalive_color": "blue"}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DoublePressGapMS != 400 {
		t.Errorf("Expected gap 400, got %d", cfg.DoublePressGapMS)
	}
	if cfg.KeepAliveRGB() != ColorBlue {
		t.Errorf("Expected blue keep-alive color, got %v", cfg.KeepAliveRGB())
	}
	// Everything else falls back to defaults.
	if cfg.LongPressMS != 1000 || cfg.ButtonType != ButtonMechanical {
		t.Error("Unset fields did not default")
	}
}

func TestLoadConfigMalformedDocument(t *testing.T) {
	if _, err := LoadConfig([]byte(`{"double_press_gap": `)); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestLoadConfigSwapsInvertedBounds(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"keep_alive_min": 3000, "keep_alive_max": 1000}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.KeepAliveMinMS != 1000 || cfg.KeepAliveMaxMS != 3000 {
		t.Errorf("Inverted bounds not swapped: %d..%d",
			cfg.KeepAliveMinMS, cfg.KeepAliveMaxMS)
	}
}

func TestLoadConfigUnknownEnumsFallBack(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"button_type": "optical", "led_driver": "laser"}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ButtonType != ButtonMechanical {
		t.Errorf("Unknown button_type not defaulted, got %s", cfg.ButtonType)
	}
	if cfg.LedDriver != LedDriverWS2812 {
		t.Errorf("Unknown led_driver not defaulted, got %s", cfg.LedDriver)
	}
}

func TestBadColorFallsBackToDefault(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"macro_color": "chartreuse-ish"}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MacroRGB() != ColorPurple {
		t.Errorf("Bad color did not fall back, got %v", cfg.MacroRGB())
	}
}

func TestSettingsGetSet(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("debounce_interval", "40"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, ok := cfg.Get("debounce_interval"); !ok || got != "40" {
		t.Errorf("Expected '40', got %q (ok=%v)", got, ok)
	}

	if err := cfg.Set("macro_color", "cyan"); err != nil {
		t.Fatalf("Set color failed: %v", err)
	}
	if cfg.MacroRGB() != ColorCyan {
		t.Error("Color setting did not take effect")
	}

	if err := cfg.Set("macro_color", "not-a-color"); err == nil {
		t.Error("Expected error for unknown color")
	}
	if err := cfg.Set("warp_factor", "9"); err == nil {
		t.Error("Expected error for unknown setting")
	}
	if err := cfg.Set("button_pin", "banana"); err == nil {
		t.Error("Expected error for non-numeric pin")
	}
}

func TestSettingsHexValues(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("usb_vendor_id", "0x1209"); err != nil {
		t.Fatalf("Hex set failed: %v", err)
	}
	if cfg.USBVendorID != 0x1209 {
		t.Errorf("Expected 0x1209, got 0x%04x", cfg.USBVendorID)
	}
	if got, _ := cfg.Get("usb_vendor_id"); got != "0x1209" {
		t.Errorf("Expected '0x1209', got %q", got)
	}
}

func TestEachSettingCoversEveryKey(t *testing.T) {
	cfg := DefaultConfig()

	seen := map[string]bool{}
	cfg.EachSetting(func(name, value string) {
		if seen[name] {
			t.Errorf("Setting %s visited twice", name)
		}
		seen[name] = true
		if value == "" {
			t.Errorf("Setting %s has empty rendered value", name)
		}
	})

	for _, name := range []string{
		"button_type", "double_press_gap", "long_press_duration",
		"keep_alive_min", "keep_alive_max", "macro_color",
		"keepalive_color", "cancel_color", "debounce_interval",
	} {
		if !seen[name] {
			t.Errorf("Setting %s missing from enumeration", name)
		}
	}
}
