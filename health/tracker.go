package health

import (
	"sync"

	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
)

// Entry is the last successful info response of a healthy node.
type Entry struct {
	Node node.Node
	Info nodeapi.InfoResponse
}

// Snapshot maps node keys to their health entries. Presence means healthy.
type Snapshot map[string]Entry

func (s Snapshot) stateHash() uint64 {
	var hash uint64
	for _, entry := range s {
		hash ^= entry.Node.Hash64()
	}

	return hash
}

// Tracker keeps the last known set of healthy nodes. Reads never block on I/O:
// the snapshot is copied out under the read lock.
type Tracker struct {
	mut       sync.RWMutex
	entries   Snapshot
	stateHash uint64
	disabled  bool
}

// NewTracker creates an empty tracker. With disabled set, health checking is
// turned off and the selector falls back to the full node pool.
func NewTracker(disabled bool) *Tracker {
	return &Tracker{
		entries:  make(Snapshot),
		disabled: disabled,
	}
}

// IsDisabled returns true if health checking is turned off.
func (t *Tracker) IsDisabled() bool {
	return t.disabled
}

// Snapshot returns a copy of the current healthy nodes.
func (t *Tracker) Snapshot() Snapshot {
	t.mut.RLock()
	defer t.mut.RUnlock()

	snapshot := make(Snapshot, len(t.entries))
	for key, entry := range t.entries {
		snapshot[key] = entry
	}

	return snapshot
}

// Len returns the number of healthy nodes.
func (t *Tracker) Len() int {
	t.mut.RLock()
	defer t.mut.RUnlock()

	return len(t.entries)
}

// StateHash returns an order-independent hash of the healthy node set.
func (t *Tracker) StateHash() uint64 {
	t.mut.RLock()
	defer t.mut.RUnlock()

	return t.stateHash
}

// Replace swaps the snapshot and reports whether the set of healthy nodes changed.
func (t *Tracker) Replace(snapshot Snapshot) bool {
	entries := make(Snapshot, len(snapshot))
	for key, entry := range snapshot {
		entries[key] = entry
	}

	hash := entries.stateHash()

	t.mut.Lock()
	defer t.mut.Unlock()

	changed := hash != t.stateHash || len(entries) != len(t.entries)
	t.entries = entries
	t.stateHash = hash

	return changed
}

// Remove drops a node from the snapshot until the next sync.
func (t *Tracker) Remove(key string) bool {
	t.mut.Lock()
	defer t.mut.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		return false
	}

	delete(t.entries, key)
	t.stateHash ^= entry.Node.Hash64()

	return true
}
