package xldiff

import (
	"fmt"
	"strings"
)

// ColorKind tags the variants of NormalizedColor.
type ColorKind int

const (
	ColorNone ColorKind = iota
	ColorRGB
	ColorIndexed
	ColorTheme
	ColorRaw
)

// NormalizedColor is the canonical form of a color reference. Equality is
// structural: two normalized colors are equal iff their kind and payload
// match.
type NormalizedColor struct {
	Kind  ColorKind
	Hex   string // ColorRGB
	Index int    // ColorIndexed, ColorTheme
	Raw   string // ColorRaw
}

// NormalizeColor canonicalizes a color reference. It is total: a
// reference that cannot be interpreted yields a diagnostic Raw value
// rather than an error, so callers can always format output.
func NormalizeColor(ref ColorRef) NormalizedColor {
	if ref.Err != "" {
		return NormalizedColor{Kind: ColorRaw, Raw: "Error:" + ref.Err}
	}
	if ref.RGB != "" {
		return NormalizedColor{Kind: ColorRGB, Hex: strings.ToUpper(ref.RGB)}
	}
	if ref.Indexed != nil {
		return NormalizedColor{Kind: ColorIndexed, Index: *ref.Indexed}
	}
	if ref.Theme != nil {
		return NormalizedColor{Kind: ColorTheme, Index: *ref.Theme}
	}
	if ref.Raw != "" {
		return NormalizedColor{Kind: ColorRaw, Raw: ref.Raw}
	}
	return NormalizedColor{Kind: ColorNone}
}

// String renders the canonical string form: "None", a hex value,
// "indexed:<n>", "theme:<n>", or the raw form.
func (c NormalizedColor) String() string {
	switch c.Kind {
	case ColorRGB:
		return c.Hex
	case ColorIndexed:
		return fmt.Sprintf("indexed:%d", c.Index)
	case ColorTheme:
		return fmt.Sprintf("theme:%d", c.Index)
	case ColorRaw:
		return c.Raw
	default:
		return absentValue
	}
}
