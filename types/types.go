// Package types defines the shared data structures for the LootCore engine.
// This package contains only type definitions and trivial accessors.
package types

// Item is a concrete item instance produced by an item provider.
type Item struct {
	ID         string
	InstanceID string
	Name       string
	Quantity   int
	Props      map[string]any
}

// ItemDef is a catalog definition an item provider materializes from.
type ItemDef struct {
	ID    string
	Name  string
	Props map[string]any
}

// DisplayRecord is a presentation-neutral description of a loot entry
// consumed by editing tools.
type DisplayRecord struct {
	Icon  string
	Title string
	Lines []string
}

// ClickKind identifies how an editing tool activated an entry.
type ClickKind int

const (
	ClickLeft ClickKind = iota
	ClickRight
	ClickMiddle
	ClickShiftLeft
	ClickShiftRight
	ClickDouble
)

// Tool is the editing tool held while clicking an entry.
type Tool string

// Field is a single key/value pair of a serialized loot entry.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered mapping of field name to primitive value.
// Order is significant for stable output.
type Fields []Field

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in order.
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, field := range f {
		keys[i] = field.Key
	}
	return keys
}

// Map returns an unordered copy of the fields.
func (f Fields) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, field := range f {
		m[field.Key] = field.Value
	}
	return m
}
