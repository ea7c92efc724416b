package cache

// ScopedKeyer wraps a Keyer with a prefix so that several hosts can share
// one backend without colliding.
//
// Example usage:
//
//	// Keys for one HTTP server deployment
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "glitcher:api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ImageKey generates a prefixed key for normalized images.
func (k *ScopedKeyer) ImageKey(sourceHash string, opts ImageKeyOpts) string {
	return k.prefix + k.inner.ImageKey(sourceHash, opts)
}

// RenderKey generates a prefixed key for render artifacts.
func (k *ScopedKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(sourceHash, opts)
}
