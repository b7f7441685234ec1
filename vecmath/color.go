package vecmath

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a straight-alpha RGBA color with components in [0,1]. It
// implements image/color.Color so it interoperates with the glyph outlines
// go-text/typesetting hands back for the text() builder (§4.6.7).
type Color struct {
	R, G, B, A float64
}

// Opaque builds a fully-opaque color.
func Opaque(r, g, b float64) Color { return Color{R: r, G: g, B: b, A: 1} }

// White, Black and the remaining colors named directly by the grammar
// (§6) are guaranteed to resolve to these exact values even if a future
// colornames revision drifts.
var (
	White   = Opaque(1, 1, 1)
	Black   = Opaque(0, 0, 0)
	Gray    = Opaque(0.5, 0.5, 0.5)
	Red     = Opaque(1, 0, 0)
	Green   = Opaque(0, 1, 0)
	Blue    = Opaque(0, 0, 1)
	Yellow  = Opaque(1, 1, 0)
	Cyan    = Opaque(0, 1, 1)
	Magenta = Opaque(1, 0, 1)
	Orange  = Opaque(1, 0.647, 0)
)

var namedColors = map[string]Color{
	"white": White, "black": Black, "gray": Gray, "grey": Gray,
	"red": Red, "green": Green, "blue": Blue, "yellow": Yellow,
	"cyan": Cyan, "magenta": Magenta, "orange": Orange,
}

// NamedColor resolves a bareword color name. It first checks the ten names
// the grammar guarantees, then falls back to the X11/CSS named-color table
// from golang.org/x/image/colornames (a strict superset).
func NamedColor(name string) (Color, bool) {
	if c, ok := namedColors[strings.ToLower(name)]; ok {
		return c, true
	}
	if rgba, ok := colornames.Map[strings.ToLower(name)]; ok {
		return FromRGBA(rgba), true
	}
	return Color{}, false
}

// FromRGBA converts a standard library color into the kernel's 0..1 range.
func FromRGBA(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{R: float64(r) / 65535, G: float64(g) / 65535, B: float64(b) / 65535, A: float64(a) / 65535}
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	clamp := func(v float64) uint32 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint32(v * 65535)
	}
	a32 := clamp(c.A)
	// image/color.Color wants premultiplied alpha.
	return clamp(c.R) * a32 / 65535, clamp(c.G) * a32 / 65535, clamp(c.B) * a32 / 65535, a32
}

// ParseHexColor parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("invalid color literal %q: missing '#'", s)
	}
	hex := s[1:]
	expand := func(c byte) string { return string([]byte{c, c}) }
	var rs, gs, bs, as string
	switch len(hex) {
	case 3:
		rs, gs, bs, as = expand(hex[0]), expand(hex[1]), expand(hex[2]), "ff"
	case 4:
		rs, gs, bs, as = expand(hex[0]), expand(hex[1]), expand(hex[2]), expand(hex[3])
	case 6:
		rs, gs, bs, as = hex[0:2], hex[2:4], hex[4:6], "ff"
	case 8:
		rs, gs, bs, as = hex[0:2], hex[2:4], hex[4:6], hex[6:8]
	default:
		return Color{}, fmt.Errorf("invalid color literal %q: unexpected length", s)
	}
	r, err1 := strconv.ParseUint(rs, 16, 8)
	g, err2 := strconv.ParseUint(gs, 16, 8)
	b, err3 := strconv.ParseUint(bs, 16, 8)
	a, err4 := strconv.ParseUint(as, 16, 8)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return Color{}, fmt.Errorf("invalid color literal %q: non-hex digit", s)
	}
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: float64(a) / 255}, nil
}

// Lerp linearly interpolates between two colors.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Equals reports tolerant equality.
func (c Color) Equals(o Color) bool {
	const eps = 1.0 / 512
	abs := func(x float64) float64 {
		if x < 0 {
			return -x
		}
		return x
	}
	return abs(c.R-o.R) <= eps && abs(c.G-o.G) <= eps && abs(c.B-o.B) <= eps && abs(c.A-o.A) <= eps
}

// Material tags geometry with appearance data. It is never shaded by this
// kernel (no real-time rendering, per Non-goals) — it is carried through
// CSG and builders so a downstream renderer can use it.
type Material struct {
	Name      string
	Color     Color
	Metallic  float64
	Roughness float64
}

// DefaultMaterial is used when a block defines no material.
var DefaultMaterial = Material{Name: "default", Color: White, Roughness: 1}
