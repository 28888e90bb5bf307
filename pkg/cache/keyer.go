package cache

import (
	"math"
	"strconv"
)

// SearchKeyOpts are the search parameters that affect a result.
type SearchKeyOpts struct {
	Algorithm string  `json:"algorithm"`
	K         float64 `json:"-"`
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Budget    int     `json:"budget,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SearchKey returns the key of a search result on the instance whose
	// content hash is instanceHash.
	SearchKey(instanceHash string, opts SearchKeyOpts) string
}

// DefaultKeyer produces keys of the form "search:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SearchKey hashes the instance hash together with opts. K is encoded as
// text so that infinities hash deterministically.
func (DefaultKeyer) SearchKey(instanceHash string, opts SearchKeyOpts) string {
	return searchKey(instanceHash, opts)
}

func formatK(k float64) string {
	if math.IsInf(k, 0) {
		if k > 0 {
			return "inf"
		}
		return "-inf"
	}
	return strconv.FormatFloat(k, 'g', -1, 64)
}

// ScopedKeyer wraps a Keyer with a prefix, so several tools or versions can
// share one Redis database without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "gridpath:v1:")
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

// SearchKey generates a prefixed search key.
func (k *ScopedKeyer) SearchKey(instanceHash string, opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(instanceHash, opts)
}
