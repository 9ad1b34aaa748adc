package normalize

import (
	"testing"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated part number", "PS-8694830", "ps8694830"},
		{"spaced part number", "ps 8694830", "ps8694830"},
		{"already normalized", "ps8694830", "ps8694830"},
		{"model number", "WDT780SAEM1", "wdt780saem1"},
		{"order id", "PSO-1121", "pso1121"},
		{"empty", "", ""},
		{"only separators", "- -", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Identifier(tt.in)
			if got != tt.want {
				t.Errorf("Identifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIdentifierIdempotent(t *testing.T) {
	inputs := []string{"PS-8694830", "WDT780SAEM1", "PSO1121", "", "abc def"}
	for _, in := range inputs {
		once := Identifier(in)
		twice := Identifier(once)
		if once != twice {
			t.Errorf("Identifier not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIdentifierFormattingInvariance(t *testing.T) {
	if Identifier("PS-8694830") != Identifier("ps 8694830") {
		t.Error("expected hyphenated and spaced forms to normalize to the same value")
	}
}
