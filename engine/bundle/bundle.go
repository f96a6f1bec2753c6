// Package bundle holds the rewards collected during a single reward event.
package bundle

import (
	"fmt"

	"github.com/nathoo/lootcore/types"
)

// Bundle accumulates rolled loot for one reward event. It is owned by the
// event that created it and is not safe for concurrent use.
type Bundle struct {
	Messages []string
	Items    []types.Item
}

// New returns an empty bundle.
func New() *Bundle {
	return &Bundle{}
}

// AddMessage appends a message. Duplicates are kept.
func (b *Bundle) AddMessage(text string) {
	b.Messages = append(b.Messages, text)
}

// AddItem appends an item. Duplicates are kept.
func (b *Bundle) AddItem(item types.Item) {
	b.Items = append(b.Items, item)
}

// Empty reports whether nothing was rolled.
func (b *Bundle) Empty() bool {
	return len(b.Messages) == 0 && len(b.Items) == 0
}

// Lines renders the bundle contents in roll order for display.
func (b *Bundle) Lines() []string {
	if b.Empty() {
		return []string{"Nothing dropped."}
	}
	lines := make([]string, 0, len(b.Messages)+len(b.Items))
	lines = append(lines, b.Messages...)
	for _, item := range b.Items {
		name := item.Name
		if name == "" {
			name = item.ID
		}
		lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, name))
	}
	return lines
}
