package glyph

import (
	"errors"
	"math"
	"testing"
)

func TestParseRamp(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{DefaultRamp, 9},
		{"@", 1},
		{"█▓▒░ ", 5},
		{"éx", 2},
	}

	for _, tt := range tests {
		r, err := ParseRamp(tt.input)
		if err != nil {
			t.Fatalf("ParseRamp(%q) failed: %v", tt.input, err)
		}
		if r.Len() != tt.expected {
			t.Errorf("ParseRamp(%q).Len() = %d, expected %d", tt.input, r.Len(), tt.expected)
		}
		if r.String() != tt.input {
			t.Errorf("ParseRamp(%q).String() = %q", tt.input, r.String())
		}
	}
}

func TestParseRampEmpty(t *testing.T) {
	if _, err := ParseRamp(""); !errors.Is(err, ErrEmptyRamp) {
		t.Errorf("expected ErrEmptyRamp, got %v", err)
	}
}

func TestIndexAlwaysInRange(t *testing.T) {
	for _, s := range []string{"@", "ab", DefaultRamp, "0123456789abcdefghijklmnopqrstuvwxyz"} {
		r := MustParseRamp(s)
		for b := 0; b <= 255; b++ {
			idx := r.Index(float64(b))
			if idx < 0 || idx > r.Len()-1 {
				t.Fatalf("ramp len %d: brightness %d gave index %d", r.Len(), b, idx)
			}
		}
	}
}

func TestMapEndpoints(t *testing.T) {
	for _, s := range []string{"@", "ab", DefaultRamp, "█▓▒░ "} {
		r := MustParseRamp(s)
		if got := r.Map(0); got != r.Glyph(0) {
			t.Errorf("ramp %q: Map(0) = %q, expected %q", s, got, r.Glyph(0))
		}
		if got := r.Map(255); got != r.Glyph(r.Len()-1) {
			t.Errorf("ramp %q: Map(255) = %q, expected %q", s, got, r.Glyph(r.Len()-1))
		}
	}
}

func TestIndexFormula(t *testing.T) {
	r := Default()
	tests := []struct {
		brightness float64
		expected   int
	}{
		{0, 0},
		{28.4, 0},
		{28.5, 1}, // 28.5/256*9 = 1.0019
		{127.9, 4},
		{255, 8},
		{255.99, 8},
	}

	for _, tt := range tests {
		if got := r.Index(tt.brightness); got != tt.expected {
			t.Errorf("Index(%v) = %d, expected %d", tt.brightness, got, tt.expected)
		}
	}
}

func TestIndexClampsContractViolations(t *testing.T) {
	r := Default()
	tests := []struct {
		brightness float64
		expected   int
	}{
		{256, 8},
		{1000, 8},
		{-1, 0},
		{math.Inf(1), 8},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := r.Index(tt.brightness); got != tt.expected {
			t.Errorf("Index(%v) = %d, expected %d", tt.brightness, got, tt.expected)
		}
	}
}

func TestZeroRamp(t *testing.T) {
	var r Ramp
	if got := r.Map(100); got != " " {
		t.Errorf("zero ramp Map = %q, expected space", got)
	}
}
