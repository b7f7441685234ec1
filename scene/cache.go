package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/vecmath"
)

// Cache maps a structural geometry key to its built mesh. Reads take only
// the shared read lock; a miss takes a per-key lock so concurrent builds of
// the same subgraph compute at most once (§5).
type Cache struct {
	mu      sync.RWMutex
	entries map[string]mesh.Mesh
	locks   sync.Map // key -> *sync.Mutex, one per in-flight miss
}

// NewCache constructs an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]mesh.Mesh)}
}

// Key computes the structural hash of a node: its type, transform,
// material, smoothing, and the canonicalized keys of its children,
// recursively (§5).
func Key(g *Geometry) string {
	h := sha256.New()
	fmt.Fprintf(h, "t:%d", g.Type)
	writeTransform(h, g.Transform)
	if g.Material != nil {
		fmt.Fprintf(h, "m:%s", g.Material.Name)
	}
	fmt.Fprintf(h, "s:%g", g.Smoothing)
	for _, c := range g.Children {
		fmt.Fprintf(h, "c:%s", Key(c))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeTransform(h interface{ Write([]byte) (int, error) }, t vecmath.Transform) {
	fmt.Fprintf(h, "o:%g,%g,%g", t.Offset.X, t.Offset.Y, t.Offset.Z)
	fmt.Fprintf(h, "r:%g,%g,%g,%g", t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W)
	fmt.Fprintf(h, "sc:%g,%g,%g", t.Scale.X, t.Scale.Y, t.Scale.Z)
}

// GetOrBuild returns the cached mesh for key, computing it via build only
// on a miss; concurrent misses for the same key block on a per-key lock
// so the subgraph is computed at most once.
func (c *Cache) GetOrBuild(key string, build func() (mesh.Mesh, error)) (mesh.Mesh, error) {
	c.mu.RLock()
	if m, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	lockAny, _ := c.locks.LoadOrStore(key, &sync.Mutex{})
	lock := lockAny.(*sync.Mutex)
	lock.Lock()
	defer lock.Unlock()

	c.mu.RLock()
	if m, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	m, err := build()
	if err != nil {
		return mesh.Empty, err
	}
	c.mu.Lock()
	c.entries[key] = m
	c.mu.Unlock()
	return m, nil
}
