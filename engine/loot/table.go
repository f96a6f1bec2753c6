package loot

import (
	"fmt"

	"github.com/nathoo/lootcore/engine/bundle"
)

// Table is a named, ordered list of loot entries rolled together for one
// reward event.
type Table struct {
	Name    string
	Entries []Entry
}

// NewTable creates a table with the given entries.
func NewTable(name string, entries ...Entry) *Table {
	return &Table{Name: name, Entries: entries}
}

// Roll checks every entry's probability independently and lets each hit
// contribute to a fresh bundle. The first roll error aborts the event so a
// partial bundle is never delivered.
func (t *Table) Roll(env Env, bonus float64) (*bundle.Bundle, error) {
	b := bundle.New()
	for i, e := range t.Entries {
		if !env.RNG.CheckHit(e.Probability()) {
			continue
		}
		if err := e.Roll(env, b, bonus); err != nil {
			return nil, fmt.Errorf("table %s entry %d (%s): %w", t.Name, i+1, e, err)
		}
	}
	return b, nil
}

// Add appends an entry.
func (t *Table) Add(e Entry) {
	t.Entries = append(t.Entries, e)
}

// Remove deletes the entry at index i (0-based). It reports whether an
// entry was removed.
func (t *Table) Remove(i int) bool {
	if i < 0 || i >= len(t.Entries) {
		return false
	}
	t.Entries = append(t.Entries[:i], t.Entries[i+1:]...)
	return true
}

// Entry returns the entry at index i (0-based), or nil.
func (t *Table) Entry(i int) Entry {
	if i < 0 || i >= len(t.Entries) {
		return nil
	}
	return t.Entries[i]
}

// Find returns the index of the first entry equal to e, or -1.
func (t *Table) Find(e Entry) int {
	for i, other := range t.Entries {
		if other.Equal(e) {
			return i
		}
	}
	return -1
}

// Lines returns the numbered descriptions of every entry.
func (t *Table) Lines() []string {
	if len(t.Entries) == 0 {
		return []string{"(empty)"}
	}
	lines := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		lines[i] = fmt.Sprintf("%d. %s", i+1, e)
	}
	return lines
}
