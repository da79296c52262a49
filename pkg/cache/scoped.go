package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate namespaces to
// processes that share one Redis instance.
//
// Example usage:
//
//	// Keys for an experiment run
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "exp:mutag:")
//
//	// Keys shared by everyone
//	shared := NewDefaultKeyer()
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

// MatrixKey generates a prefixed key for kernel matrix caching.
func (k *ScopedKeyer) MatrixKey(xHash, yHash string, opts MatrixKeyOpts) string {
	return k.prefix + k.inner.MatrixKey(xHash, yHash, opts)
}

// BigDAGKey generates a prefixed key for Big DAG rendering caching.
func (k *ScopedKeyer) BigDAGKey(inputHash string, opts BigDAGKeyOpts) string {
	return k.prefix + k.inner.BigDAGKey(inputHash, opts)
}
