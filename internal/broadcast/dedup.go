package broadcast

import "sync"

// Dedup is a bounded, ordered set of recently broadcast keys. Adding past
// the capacity evicts the oldest entry. Safe for concurrent use from
// multiple broadcast cadences.
type Dedup struct {
	mu    sync.Mutex
	max   int
	order []string
	seen  map[string]struct{}
}

func NewDedup(max int) *Dedup {
	return &Dedup{
		max:  max,
		seen: make(map[string]struct{}, max),
	}
}

// Add records a key, reporting whether it was new. Known keys return false
// and are not re-ordered.
func (d *Dedup) Add(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return false
	}

	d.seen[key] = struct{}{}
	d.order = append(d.order, key)
	if len(d.order) > d.max {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}
	return true
}

// Len returns the current number of tracked keys.
func (d *Dedup) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}
