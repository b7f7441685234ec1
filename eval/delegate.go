package eval

import "github.com/solidforge/solidforge/scene"

// Delegate is the host contract an embedding application supplies (§6):
// resolving import paths, loading external geometry, and surfacing debug
// output and cancellation to the evaluator without the kernel depending on
// any I/O or UI package directly.
type Delegate interface {
	// ResolveURL turns an import path into a host-specific URL/file handle
	// identifier used for cache-busting and error messages.
	ResolveURL(path string) (string, error)
	// ImportGeometry loads a previously-built scene graph for `import`. A
	// nil Scene with a nil error means "not found"; the evaluator raises
	// fileNotFound in that case.
	ImportGeometry(url string) (*scene.Scene, error)
	// DebugLog receives the arguments of a `print` command.
	DebugLog(values []string)
	// IsCancelled is polled at statement boundaries and inside builder
	// inner loops (§4.8, §5).
	IsCancelled() bool
}

// NopDelegate is a Delegate that resolves no imports and never cancels —
// useful for scripts that don't use `import` or host-driven cancellation.
type NopDelegate struct{}

func (NopDelegate) ResolveURL(path string) (string, error) { return path, nil }
func (NopDelegate) ImportGeometry(url string) (*scene.Scene, error) { return nil, nil }
func (NopDelegate) DebugLog(values []string)                       {}
func (NopDelegate) IsCancelled() bool                               { return false }
