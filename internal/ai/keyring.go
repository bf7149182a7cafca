package ai

import "sync/atomic"

// KeyRing hands out API keys round-robin so concurrent tasks spread
// their rate-limit exposure across all configured keys.
type KeyRing struct {
	keys []string
	next atomic.Uint64
}

// NewKeyRing returns a KeyRing over the provided keys.
func NewKeyRing(keys []string) *KeyRing {
	return &KeyRing{keys: keys}
}

// Next returns the next key in rotation.
func (r *KeyRing) Next() string {
	if len(r.keys) == 0 {
		return ""
	}
	n := r.next.Add(1) - 1
	return r.keys[n%uint64(len(r.keys))]
}
