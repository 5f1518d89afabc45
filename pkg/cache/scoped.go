package cache

// ScopedKeyer wraps a Keyer with a prefix.
// The CLI scopes keys by build version, so entries written by an older
// renderer are never read back:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v0.4.0:")
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

// RenderKey generates a prefixed key for a rendered document.
func (k *ScopedKeyer) RenderKey(contentHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(contentHash, opts)
}
