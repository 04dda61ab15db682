// Package cache memoizes the results of expensive log and stats scans so
// repeated API hits within a short window don't rescan the filesystem.
package cache

import (
	"time"

	"github.com/ammario/tlru"
)

// Memo is a TTL- and size-bounded result cache. Entries expire after the
// configured TTL and the oldest are evicted past maxEntries.
type Memo struct {
	ttl   time.Duration
	cache *tlru.Cache[string, any]
}

func New(ttl time.Duration, maxEntries int) *Memo {
	return &Memo{
		ttl:   ttl,
		cache: tlru.New[string](tlru.ConstantCost[any], maxEntries),
	}
}

// Do returns the cached value for key, computing and storing it on a miss.
func Do[T any](m *Memo, key string, compute func() T) T {
	if v, _, ok := m.cache.Get(key); ok {
		if t, ok := v.(T); ok {
			return t
		}
	}

	t := compute()
	m.cache.Set(key, t, m.ttl)
	return t
}

// Delete drops one cached entry.
func (m *Memo) Delete(key string) {
	m.cache.Delete(key)
}
