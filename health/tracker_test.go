package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
)

func entryFor(rawURL string, features ...string) Entry {
	return Entry{
		Node: node.MustParse(rawURL),
		Info: nodeapi.InfoResponse{Features: features},
	}
}

func TestTracker_Replace(t *testing.T) {
	tracker := NewTracker(false)
	require.False(t, tracker.IsDisabled())
	require.Equal(t, 0, tracker.Len())

	a := entryFor("http://node1")
	b := entryFor("http://node2", nodeapi.PowFeature)

	changed := tracker.Replace(Snapshot{a.Node.Key(): a, b.Node.Key(): b})
	assert.True(t, changed)
	assert.Equal(t, 2, tracker.Len())

	// Same set of nodes, nothing changed.
	changed = tracker.Replace(Snapshot{b.Node.Key(): b, a.Node.Key(): a})
	assert.False(t, changed)

	changed = tracker.Replace(Snapshot{a.Node.Key(): a})
	assert.True(t, changed)
	assert.Equal(t, a.Node.Hash64(), tracker.StateHash())
}

func TestTracker_SnapshotIsCopy(t *testing.T) {
	tracker := NewTracker(false)
	a := entryFor("http://node1")
	tracker.Replace(Snapshot{a.Node.Key(): a})

	snapshot := tracker.Snapshot()
	delete(snapshot, a.Node.Key())

	assert.Equal(t, 1, tracker.Len())
}

func TestTracker_ReplaceCopiesInput(t *testing.T) {
	tracker := NewTracker(false)
	a := entryFor("http://node1")

	input := Snapshot{a.Node.Key(): a}
	tracker.Replace(input)

	b := entryFor("http://node2")
	input[b.Node.Key()] = b

	assert.Equal(t, 1, tracker.Len())
}

func TestTracker_Remove(t *testing.T) {
	tracker := NewTracker(false)
	a := entryFor("http://node1")
	b := entryFor("http://node2")
	tracker.Replace(Snapshot{a.Node.Key(): a, b.Node.Key(): b})

	require.True(t, tracker.Remove(a.Node.Key()))
	require.False(t, tracker.Remove(a.Node.Key()))

	assert.Equal(t, 1, tracker.Len())
	assert.Equal(t, b.Node.Hash64(), tracker.StateHash())
}
