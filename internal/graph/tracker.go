// Package graph tracks the import graph reported by successful compiles.
package graph

import "sync"

// entry is the recorded state for one compiled entry path.
type entry struct {
	pending bool
	deps    []string
}

// Tracker maps each compiled entry path to the list of files it transitively
// imported, as reported by the last successful compilation of that entry.
//
// A Tracker lives for the life of its middleware instance and is never
// evicted: growth is bounded by the number of distinct stylesheet entry
// points. Entries are marked pending before a compile starts so that a
// concurrent staleness check never trusts a half-finished compile; pending
// entries read as absent. Concurrent compiles of the same entry are not
// deduplicated.
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make(map[string]entry),
	}
}

// RecordPending marks the entry as being compiled. Lookups for the entry
// report it as absent until RecordDependencies replaces the marker.
func (t *Tracker) RecordPending(entryPath string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[entryPath] = entry{pending: true}
}

// RecordDependencies replaces the entry's record with the ordered list of
// files its last successful compilation transitively included. An empty list
// is a valid record.
func (t *Tracker) RecordDependencies(entryPath string, deps []string) {
	recorded := make([]string, len(deps))
	copy(recorded, deps)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[entryPath] = entry{deps: recorded}
}

// Lookup returns the dependency list recorded for the entry. ok is false when
// the entry has never completed a compile this process lifetime, or when a
// compile is currently pending.
func (t *Tracker) Lookup(entryPath string) (deps []string, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, found := t.entries[entryPath]
	if !found || e.pending {
		return nil, false
	}
	return e.deps, true
}
