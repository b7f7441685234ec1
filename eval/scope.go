package eval

import (
	"github.com/solidforge/solidforge/rng"
	"github.com/solidforge/solidforge/vecmath"
)

// Scope is the evaluator's per-block context record (§4.8): the current
// transform/material/etc state, a user-defined symbol table, and the
// accumulated child values a block's own evaluation produces for its
// parent to consume.
type Scope struct {
	Parent *Scope

	Transform      vecmath.Transform
	ChildTransform vecmath.Transform
	Material       *vecmath.Material
	Opacity        float64
	Detail         float64
	Smoothing      float64
	Font           string
	Name           string
	Background     *vecmath.Material
	Random         *rng.Source

	vars     map[string]Value
	Children []Value
}

// NewRootScope builds the outermost scope: identity transform, default
// material, a seeded PRNG, and no user definitions.
func NewRootScope(seed int64) *Scope {
	return &Scope{
		Transform:      vecmath.IdentityTransform,
		ChildTransform: vecmath.IdentityTransform,
		Material:       &vecmath.DefaultMaterial,
		Opacity:        1,
		Detail:         16,
		Smoothing:      0,
		Random:         rng.NewSource(seed),
		vars:           make(map[string]Value),
	}
}

// Child derives a new scope for entering a block: it inherits the current
// state by value (so mutating commands inside the block body don't leak
// back to the parent) and starts with an empty symbol table and child list.
func (s *Scope) Child() *Scope {
	return &Scope{
		Parent:         s,
		Transform:      s.Transform,
		ChildTransform: s.ChildTransform,
		Material:       s.Material,
		Opacity:        s.Opacity,
		Detail:         s.Detail,
		Smoothing:      s.Smoothing,
		Font:           s.Font,
		Name:           s.Name,
		Background:     s.Background,
		Random:         s.Random,
		vars:           make(map[string]Value),
	}
}

// Define binds name to value in this scope's own symbol table.
func (s *Scope) Define(name string, value Value) { s.vars[name] = value }

// Lookup resolves name against this scope's table, then its ancestors.
func (s *Scope) Lookup(name string) (Value, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// AddChild records a value (mesh/path/point/polygon) produced by a nested
// statement for the enclosing block to consume once its body finishes.
func (s *Scope) AddChild(v Value) { s.Children = append(s.Children, v) }
