// Package persist implements the §6 persisted mesh format: an optional
// YAML front-matter block (generator/source_hash/created, following the
// teacher's level.Level YAML round-trip convention) ahead of a JSON mesh
// body of polygons, bounds and materials.
package persist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/vecmath"
)

// FrontMatter is the optional metadata block preceding the JSON mesh body.
type FrontMatter struct {
	Generator  string `yaml:"generator"`
	SourceHash string `yaml:"source_hash,omitempty"`
	Created    string `yaml:"created,omitempty"`
}

type wireColor struct {
	R, G, B, A float64
}

type wireMaterial struct {
	Name      string    `json:"name"`
	Color     wireColor `json:"color"`
	Metallic  float64   `json:"metallic,omitempty"`
	Roughness float64   `json:"roughness,omitempty"`
}

type wireVertex struct {
	Position vecmath.Vector `json:"position"`
	Normal   vecmath.Vector `json:"normal"`
	Texcoord vecmath.Vector `json:"texcoord,omitempty"`
	Color    *wireColor     `json:"color,omitempty"`
}

type wirePolygon struct {
	Vertices []wireVertex  `json:"vertices"`
	Material *wireMaterial `json:"material,omitempty"`
}

type wireBounds struct {
	Min vecmath.Vector `json:"min"`
	Max vecmath.Vector `json:"max"`
}

// document is the JSON mesh body: `{polygons, bounds?, convex?, materials?}`
// (§6). Write always emits the flat form (each polygon carries its own
// inline material); Read additionally accepts the grouped
// `[[Polygon]]` + `materials` form for round-tripping files from other
// producers.
type document struct {
	Polygons  json.RawMessage `json:"polygons"`
	Bounds    *wireBounds     `json:"bounds,omitempty"`
	Convex    *bool           `json:"convex,omitempty"`
	Materials []wireMaterial  `json:"materials,omitempty"`
}

// Write serializes m to w as front-matter (if non-nil) followed by the
// JSON mesh body.
func Write(w io.Writer, m mesh.Mesh, fm *FrontMatter) error {
	if fm != nil {
		bw := bufio.NewWriter(w)
		fmt.Fprintln(bw, "---")
		enc := yaml.NewEncoder(bw)
		enc.SetIndent(2)
		if err := enc.Encode(fm); err != nil {
			return fmt.Errorf("encoding front matter: %w", err)
		}
		enc.Close()
		fmt.Fprintln(bw, "---")
		if err := bw.Flush(); err != nil {
			return err
		}
	}

	polys := m.Polygons()
	wirePolys := make([]wirePolygon, len(polys))
	for i, p := range polys {
		wirePolys[i] = toWirePolygon(p)
	}
	polyData, err := json.Marshal(wirePolys)
	if err != nil {
		return fmt.Errorf("marshaling polygons: %w", err)
	}
	convex := m.IsConvex()
	bounds := m.Bounds()
	doc := document{
		Polygons: polyData,
		Bounds:   &wireBounds{Min: bounds.Min, Max: bounds.Max},
		Convex:   &convex,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling mesh: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Read parses a persisted mesh document, returning its mesh and front
// matter (nil if the document had none).
func Read(r io.Reader) (mesh.Mesh, *FrontMatter, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return mesh.Empty, nil, err
	}

	var fm *FrontMatter
	body := data
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("---")) {
		trimmed := string(bytes.TrimLeft(data, " \t\r\n"))
		rest := trimmed[3:]
		end := strings.Index(rest, "---")
		if end >= 0 {
			var parsed FrontMatter
			if err := yaml.Unmarshal([]byte(rest[:end]), &parsed); err == nil {
				fm = &parsed
			}
			body = []byte(rest[end+3:])
		}
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return mesh.Empty, nil, fmt.Errorf("parsing mesh body: %w", err)
	}

	polys, err := decodePolygons(doc)
	if err != nil {
		return mesh.Empty, nil, err
	}
	return mesh.New(polys), fm, nil
}

func decodePolygons(doc document) ([]geom.Polygon, error) {
	// Try the flat [Polygon] form first.
	var flat []wirePolygon
	if err := json.Unmarshal(doc.Polygons, &flat); err == nil {
		out := make([]geom.Polygon, len(flat))
		for i, wp := range flat {
			out[i] = fromWirePolygon(wp, nil)
		}
		return out, nil
	}

	// Fall back to the grouped [[Polygon]] + materials form.
	var grouped [][]wirePolygon
	if err := json.Unmarshal(doc.Polygons, &grouped); err != nil {
		return nil, fmt.Errorf("polygons field is neither flat nor grouped: %w", err)
	}
	var out []geom.Polygon
	for groupIdx, group := range grouped {
		var mat *vecmath.Material
		if groupIdx < len(doc.Materials) {
			m := fromWireMaterial(doc.Materials[groupIdx])
			mat = &m
		}
		for _, wp := range group {
			out = append(out, fromWirePolygon(wp, mat))
		}
	}
	return out, nil
}

func toWirePolygon(p geom.Polygon) wirePolygon {
	verts := make([]wireVertex, len(p.Vertices))
	for i, v := range p.Vertices {
		wv := wireVertex{Position: v.Position, Normal: v.Normal, Texcoord: v.Texcoord}
		if v.Color != nil {
			wv.Color = &wireColor{R: v.Color.R, G: v.Color.G, B: v.Color.B, A: v.Color.A}
		}
		verts[i] = wv
	}
	wp := wirePolygon{Vertices: verts}
	if p.Material != nil {
		wm := toWireMaterial(*p.Material)
		wp.Material = &wm
	}
	return wp
}

func fromWirePolygon(wp wirePolygon, groupMaterial *vecmath.Material) geom.Polygon {
	verts := make([]geom.Vertex, len(wp.Vertices))
	for i, wv := range wp.Vertices {
		v := geom.Vertex{Position: wv.Position, Normal: wv.Normal, Texcoord: wv.Texcoord}
		if wv.Color != nil {
			c := vecmath.Color{R: wv.Color.R, G: wv.Color.G, B: wv.Color.B, A: wv.Color.A}
			v.Color = &c
		}
		verts[i] = v
	}
	mat := groupMaterial
	if wp.Material != nil {
		m := fromWireMaterial(*wp.Material)
		mat = &m
	}
	p, ok := geom.NewPolygon(verts, mat)
	if !ok {
		// Degenerate (fewer than 3 vertices, or collinear): keep the
		// vertex/material data but leave the plane zero-valued rather
		// than dropping the polygon from the round trip.
		p = geom.Polygon{Vertices: verts, Material: mat}
	}
	return p
}

func toWireMaterial(m vecmath.Material) wireMaterial {
	return wireMaterial{
		Name:      m.Name,
		Color:     wireColor{R: m.Color.R, G: m.Color.G, B: m.Color.B, A: m.Color.A},
		Metallic:  m.Metallic,
		Roughness: m.Roughness,
	}
}

func fromWireMaterial(wm wireMaterial) vecmath.Material {
	return vecmath.Material{
		Name:      wm.Name,
		Color:     vecmath.Color{R: wm.Color.R, G: wm.Color.G, B: wm.Color.B, A: wm.Color.A},
		Metallic:  wm.Metallic,
		Roughness: wm.Roughness,
	}
}
