package builder

import (
	"bytes"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/vecmath"
)

// Font is the resolved font data for the text() block, looked up in the
// evaluator's Fonts registry (the eval.Delegate interface has no font
// method); nil means no font resolved.
type Font struct {
	Data []byte
	Size float64
}

// Text shapes content with font and lays glyph outlines out left-to-right,
// wrapping at wrapwidth (0 disables wrapping) with linespacing line pitch
// (§4.6.7). A nil font, or any shaping/parse failure, degrades to an empty
// mesh rather than failing the build (§7 runtime-recoverable policy).
func Text(content string, fnt *Font, wrapwidth, linespacing float64, material *vecmath.Material) mesh.Mesh {
	if fnt == nil || len(fnt.Data) == 0 || content == "" {
		return mesh.Empty
	}
	parsed, err := font.ParseTTF(bytes.NewReader(fnt.Data))
	if err != nil {
		return mesh.Empty
	}
	face := font.NewFace(parsed.Font)

	words := splitWords(content)
	var polys []geom.Polygon
	var penX, penY float64
	for _, word := range words {
		if word == "\n" {
			penX = 0
			penY -= linespacing
			continue
		}
		advance := measureWord(face, word, fnt.Size)
		if wrapwidth > 0 && penX > 0 && penX+advance > wrapwidth {
			penX = 0
			penY -= linespacing
		}
		polys = append(polys, shapeWord(face, word, fnt.Size, penX, penY, material)...)
		penX += advance
	}
	return mesh.New(polys)
}

func splitWords(s string) []string {
	var out []string
	var cur []rune
	for _, r := range s {
		if r == '\n' {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			out = append(out, "\n")
			continue
		}
		if r == ' ' {
			cur = append(cur, r)
			out = append(out, string(cur))
			cur = nil
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

func shapeInput(face *font.Face, word string, size float64) shaping.Input {
	runes := []rune(word)
	return shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Face:      face,
		Size:      fixed.Int26_6(size * 64),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}
}

func measureWord(face *font.Face, word string, size float64) float64 {
	shaper := &shaping.HarfbuzzShaper{}
	out := shaper.Shape(shapeInput(face, word, size))
	var total float64
	for _, g := range out.Glyphs {
		total += float64(g.Advance) / 64
	}
	return total
}

// shapeWord positions each glyph's outline segments at the pen location
// and converts the outline's closed contours into planar Polygons via
// ear-clipping, mirroring the positioning approach the font shaper already
// uses elsewhere in this pack (glyph-local coordinates offset by an
// accumulated pen advance).
func shapeWord(face *font.Face, word string, size, originX, originY float64, material *vecmath.Material) []geom.Polygon {
	shaper := &shaping.HarfbuzzShaper{}
	out := shaper.Shape(shapeInput(face, word, size))

	var polys []geom.Polygon
	x, y := originX, originY
	scale := size / float64(face.Upem())
	for _, g := range out.Glyphs {
		outline := face.GlyphData(g.GlyphID)
		if segs, ok := outline.(font.GlyphOutline); ok {
			polys = append(polys, contoursToPolygons(segs, x, y, scale, material)...)
		}
		x += float64(g.XOffset)/64 + float64(g.Advance)/64
		y += float64(g.YOffset) / 64
	}
	return polys
}

func contoursToPolygons(outline font.GlyphOutline, x, y, scale float64, material *vecmath.Material) []geom.Polygon {
	var polys []geom.Polygon
	var loop []vecmath.Vector
	flush := func() {
		if len(loop) >= 3 {
			verts := make([]geom.Vertex, len(loop))
			for i, p := range loop {
				verts[i] = geom.NewVertex(p)
			}
			polys = append(polys, geom.Triangulate(verts, material)...)
		}
		loop = nil
	}
	pt := func(px, py float32) vecmath.Vector {
		return vecmath.Vector{X: x + float64(px)*scale, Y: y + float64(py)*scale}
	}
	for _, seg := range outline.Segments {
		switch seg.Op {
		case font.SegmentOpMoveTo:
			flush()
			loop = append(loop, pt(seg.Args[0].X, seg.Args[0].Y))
		case font.SegmentOpLineTo:
			loop = append(loop, pt(seg.Args[0].X, seg.Args[0].Y))
		case font.SegmentOpQuadTo:
			loop = append(loop, pt(seg.Args[1].X, seg.Args[1].Y))
		case font.SegmentOpCubeTo:
			loop = append(loop, pt(seg.Args[2].X, seg.Args[2].Y))
		}
	}
	flush()
	return polys
}
