package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments
// (or solver builds) can share one Redis instance without collisions.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "nuss3d-v2:")
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

// FoldKey generates a prefixed key for a fold result.
func (k *ScopedKeyer) FoldKey(sequenceHash, method string, threads int) string {
	return k.prefix + k.inner.FoldKey(sequenceHash, method, threads)
}
