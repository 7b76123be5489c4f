package xldiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColor(t *testing.T) {
	idx := 5
	theme := 3

	tests := []struct {
		name string
		ref  ColorRef
		want NormalizedColor
		str  string
	}{
		{"none", ColorRef{}, NormalizedColor{Kind: ColorNone}, "None"},
		{"rgb", ColorRef{RGB: "ff00ff00"}, NormalizedColor{Kind: ColorRGB, Hex: "FF00FF00"}, "FF00FF00"},
		{"indexed", ColorRef{Indexed: &idx}, NormalizedColor{Kind: ColorIndexed, Index: 5}, "indexed:5"},
		{"theme", ColorRef{Theme: &theme}, NormalizedColor{Kind: ColorTheme, Index: 3}, "theme:3"},
		{"raw", ColorRef{Raw: "auto"}, NormalizedColor{Kind: ColorRaw, Raw: "auto"}, "auto"},
		{"error", ColorRef{Err: "bad style"}, NormalizedColor{Kind: ColorRaw, Raw: "Error:bad style"}, "Error:bad style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeColor(tt.ref)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestNormalizeColor_RGBWinsOverIndexed(t *testing.T) {
	idx := 7
	got := NormalizeColor(ColorRef{RGB: "FFFFFF", Indexed: &idx})
	assert.Equal(t, ColorRGB, got.Kind)
}

func TestNormalizedColor_Equality(t *testing.T) {
	a := NormalizeColor(ColorRef{RGB: "ffcc00"})
	b := NormalizeColor(ColorRef{RGB: "FFCC00"})
	assert.Equal(t, a, b)

	idx := 3
	theme := 3
	assert.NotEqual(t, NormalizeColor(ColorRef{Indexed: &idx}), NormalizeColor(ColorRef{Theme: &theme}))
}
